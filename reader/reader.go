// Package reader walks a translation unit once and builds the declaration
// index: records, enums, functions, callbacks and constants, with their
// documentation comments attached and their types resolved.
package reader

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ffigen/comment"
	"ffigen/config"
	"ffigen/frontend"
	"ffigen/logging"
	"ffigen/model"
	"ffigen/name"
	orderedmap "ffigen/ordered_map"
)

var (
	// ErrUnsupportedType is returned for a C type category with no binding.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrRedefinition is returned when a struct or union is defined twice.
	ErrRedefinition = errors.New("redefinition")
	// ErrUnsupportedExpression marks a constant the reader does not evaluate.
	ErrUnsupportedExpression = errors.New("unsupported expression")
)

var (
	constantTag = regexp.MustCompile(`@(.*?): `)
	paramTag    = regexp.MustCompile(`\\param (.*?) `)
)

const returnsTag = `\returns `

// Warning is a declaration that was left out of the index.
type Warning struct {
	Kind string
	Name string
	Err  error
}

func (w Warning) String() string {
	return fmt.Sprintf("could not process value of %s %q: %v", w.Kind, w.Name, w.Err)
}

// Reader builds a model.Index from a translation unit.
type Reader struct {
	unit     frontend.TranslationUnit
	cfg      *config.Config
	logger   *logging.Logger
	log      *logging.Logger
	index    *model.Index
	resolver *Resolver
	warnings []Warning
}

// New creates a Reader. A nil logger discards output.
func New(unit frontend.TranslationUnit, cfg *config.Config, logger *logging.Logger) *Reader {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NoopLogger()
	}
	return &Reader{unit: unit, cfg: cfg, logger: logger, log: logger}
}

// Read walks the top-level declarations of the configured headers in source
// order. It stops at the first structural error and returns the index built
// so far together with it.
func (r *Reader) Read() (*model.Index, error) {
	r.index = model.NewIndex()
	r.resolver = NewResolver(r.index, r.cfg.Prefixes)
	r.warnings = nil
	r.log = r.logger

	for _, d := range r.unit.Diagnostics() {
		r.log.LogDiagnostic(d.Severity.String(), d.Text)
	}

	root := r.unit.Cursor()
	previousEnd := root.Location()
	for _, decl := range root.Children() {
		extent := decl.Extent()
		gap := frontend.Range{Start: previousEnd, End: extent.Start}

		// a typedef right after a record or enum shares its comment
		switch decl.Kind() {
		case frontend.CursorEnumDecl, frontend.CursorStructDecl, frontend.CursorUnionDecl,
			frontend.CursorMacroExpansion:
		default:
			previousEnd = extent.End
		}

		file := frontend.File(decl.Location())
		if !r.cfg.Matches(file) {
			continue
		}
		r.log = r.logger.WithHeader(file)

		lines, _ := comment.Extract(r.unit, gap, true)
		if err := r.readDeclaration(decl, lines); err != nil {
			return r.index, err
		}
	}
	return r.index, nil
}

// Warnings returns the declarations skipped by the last Read.
func (r *Reader) Warnings() []Warning {
	return r.warnings
}

func (r *Reader) skip(kind, raw string, err error) {
	r.warnings = append(r.warnings, Warning{Kind: kind, Name: raw, Err: err})
	r.log.LogSkipped(kind, raw, err)
}

func (r *Reader) readName(c frontend.Cursor) name.Name {
	return name.Tokenize(c.Spelling(), r.cfg.Prefixes)
}

func (r *Reader) readDeclaration(decl frontend.Cursor, lines []string) error {
	var err error
	switch decl.Kind() {
	case frontend.CursorEnumDecl:
		r.readEnum(decl, lines)
	case frontend.CursorStructDecl, frontend.CursorUnionDecl:
		err = r.readRecord(decl, lines)
	case frontend.CursorFunctionDecl:
		err = r.readFunction(decl, lines)
	case frontend.CursorTypedefDecl:
		err = r.readTypedef(decl, lines)
	case frontend.CursorMacroDefinition:
		r.readMacro(decl)
	default:
		return nil
	}
	r.log.LogDeclaration(decl.Kind().String(), decl.Spelling())

	if err != nil {
		return fmt.Errorf("%s %q: %w", decl.Kind(), decl.Spelling(), err)
	}
	return nil
}

func (r *Reader) readEnum(decl frontend.Cursor, lines []string) {
	description := []string{}
	tagged := make(map[string]*[]string)
	current := &description
	for _, line := range lines {
		if m := constantTag.FindAllStringSubmatch(line, -1); m != nil {
			line = constantTag.ReplaceAllString(line, "")
			text := []string{}
			tagged[m[len(m)-1][1]] = &text
			current = &text
		}
		if strings.TrimSpace(line) == "" {
			current = &description
		}
		*current = append(*current, line)
	}

	key := declKey(decl.Type())
	enum, _ := r.index.Type(key)
	existing, _ := enum.(*model.Enum)
	constants := enumConstants(decl)
	if existing != nil && len(existing.Constants) > 0 && len(constants) == 0 {
		return
	}

	result := existing
	if result == nil {
		result = &model.Enum{Name: r.readName(decl)}
	}
	result.Description = description
	result.Constants = nil

	previous := decl.Location()
	next := int64(0)
	for _, c := range constants {
		constantName := r.readName(c)
		location := c.Location()
		text, _ := comment.Extract(r.unit, frontend.Range{Start: previous, End: location}, true)
		if t, ok := tagged[constantName.Raw]; ok {
			text = append(text, *t...)
		}
		previous = location

		value := next
		if children := c.Children(); len(children) > 0 {
			v, err := evaluateInt(r.unit.Tokenize(children[0].Extent()))
			if err != nil {
				r.skip("enum constant", constantName.Raw, err)
				continue
			}
			value = v
		}

		result.Constants = append(result.Constants, model.EnumConstant{
			Name:    constantName,
			Value:   value,
			Comment: text,
		})
		next = value + 1
	}

	r.index.Upgrade(key, result)
}

func enumConstants(decl frontend.Cursor) []frontend.Cursor {
	var out []frontend.Cursor
	for _, c := range decl.Children() {
		if c.Kind() == frontend.CursorEnumConstantDecl {
			out = append(out, c)
		}
	}
	return out
}

func (r *Reader) readRecord(decl frontend.Cursor, lines []string) error {
	key := declKey(decl.Type())
	children := decl.Children()

	record := r.index.Record(key)
	switch {
	case record == nil:
		record = &model.StructOrUnion{
			Name:    r.readName(decl),
			IsUnion: decl.Kind() == frontend.CursorUnionDecl,
		}
	case len(record.Fields) > 0:
		if !hasFields(children) {
			// a forward declaration after the definition
			return nil
		}
		return fmt.Errorf("%w of %s", ErrRedefinition, model.Describe(record))
	}
	record.Description = append(record.Description, lines...)
	// fields may point back at the record being read
	r.index.Add(key, record)

	previousEnd := decl.Location()
	for i := 0; i < len(children); i++ {
		child := children[i]

		var nested frontend.Cursor
		if isNestable(child.Kind()) {
			if i+1 >= len(children) || children[i+1].Kind() != frontend.CursorFieldDecl {
				if err := r.readDeclaration(child, []string{}); err != nil {
					return err
				}
				continue
			}
			nested = child
			i++
			child = children[i]
		}
		if child.Kind() != frontend.CursorFieldDecl {
			continue
		}

		fieldName := r.readName(child)
		extent := child.Extent()
		text, _ := comment.Extract(r.unit, frontend.Range{Start: previousEnd, End: extent.Start}, true)

		nextStart := decl.Extent().End
		if i+1 < len(children) {
			nextStart = children[i+1].Location()
		}
		following, token := comment.Extract(r.unit, frontend.Range{Start: extent.End, End: nextStart}, false)
		if token != nil && frontend.Line(token.Location()) == frontend.Line(extent.End) {
			text = following
			previousEnd = token.Extent.End
		} else {
			previousEnd = extent.End
		}

		if nested != nil {
			if err := r.readDeclaration(nested, []string{}); err != nil {
				return err
			}
			if e, ok := r.index.Lookup(declKey(nested.Type())); ok {
				donate(e, r.readName(decl).Concat(fieldName))
			}
		}

		fieldType, err := r.resolver.Resolve(child.Type())
		if err != nil {
			return fmt.Errorf("field %s: %w", fieldName, err)
		}
		record.Fields = append(record.Fields, model.Field{
			Name:        fieldName,
			Type:        fieldType,
			Description: text,
		})
	}

	r.index.Upgrade(key, record)
	return nil
}

func hasFields(children []frontend.Cursor) bool {
	for _, c := range children {
		if c.Kind() == frontend.CursorFieldDecl {
			return true
		}
	}
	return false
}

func isNestable(k frontend.CursorKind) bool {
	return k.IsRecord() || k == frontend.CursorEnumDecl
}

// donate names an anonymous record or enum.
func donate(e model.Entity, n name.Name) bool {
	switch v := e.(type) {
	case *model.StructOrUnion:
		return v.Donate(n)
	case *model.Enum:
		return v.Donate(n)
	}
	return false
}

func (r *Reader) readFunction(decl frontend.Cursor, lines []string) error {
	description, returns := []string{}, []string{}
	documented := orderedmap.NewOrderedMap[string, *[]string]()
	current := &description
	for _, line := range lines {
		if m := paramTag.FindAllStringSubmatch(line, -1); m != nil {
			line = paramTag.ReplaceAllString(line, "")
			text := []string{}
			documented.Set(m[len(m)-1][1], &text)
			current = &text
		}
		if strings.Contains(line, returnsTag) {
			line = strings.ReplaceAll(line, returnsTag, "")
			current = &returns
		}
		*current = append(*current, line)
	}

	fn := &model.Function{
		Name:              r.readName(decl),
		IsBlocking:        r.cfg.IsBlocking(decl.Spelling()),
		Description:       description,
		ReturnDescription: returns,
	}

	ret, err := r.resolver.Resolve(decl.ResultType())
	if err != nil {
		return fmt.Errorf("return type: %w", err)
	}
	fn.Return = ret

	var first frontend.Type
	for _, child := range decl.Children() {
		if child.Kind() != frontend.CursorParmDecl {
			continue
		}
		param, err := r.readParameter(child)
		if err != nil {
			return err
		}
		param.IsArray = r.isArray(child)
		if first == nil {
			first = child.Type()
		}
		fn.Parameters = append(fn.Parameters, param)
	}

	// Positional matching is a best-effort fallback for headers whose
	// \param names differ from the declared ones.
	docs := documented.Values()
	for i := range fn.Parameters {
		p := &fn.Parameters[i]
		if text, ok := documented.Get(p.Name.Raw); ok {
			p.Description = *text
		} else if len(docs) == len(fn.Parameters) {
			p.Description = *docs[i]
		} else {
			p.Description = []string{}
		}
	}

	r.index.Set(model.KeyOfCursor(decl), fn)

	if first != nil {
		if target := r.resolver.PointeeRecord(first); target != nil {
			if rest, ok := methodName(fn.Name, target.Name); ok {
				target.Methods = append(target.Methods, model.Method{Name: rest, Function: fn})
			}
		}
	}
	return nil
}

func (r *Reader) readParameter(c frontend.Cursor) (model.Parameter, error) {
	paramName := r.readName(c)
	paramType, err := r.resolver.Resolve(c.Type())
	if err != nil {
		return model.Parameter{}, fmt.Errorf("parameter %s: %w", paramName, err)
	}
	if paramName.IsEmpty() {
		paramName = paramType.TypeName()
	}
	return model.Parameter{Name: paramName, Type: paramType, Description: []string{}}, nil
}

func (r *Reader) isArray(c frontend.Cursor) bool {
	for _, t := range r.unit.Tokenize(c.Extent()) {
		if t.Spelling == "[" {
			return true
		}
	}
	return false
}

// methodName consumes the leading parts of fn that spell the record name
// and returns what is left.
func methodName(fn, record name.Name) (name.Name, bool) {
	prefix := strings.ToLower(strings.Join(record.Parts, ""))
	if prefix == "" {
		return name.Name{}, false
	}
	parts := fn.Parts
	for len(parts) > 0 && prefix != "" && strings.HasPrefix(prefix, strings.ToLower(parts[0])) {
		prefix = prefix[len(parts[0]):]
		parts = parts[1:]
	}
	if prefix != "" || len(parts) == 0 {
		return name.Name{}, false
	}
	return name.New(parts...), true
}

func (r *Reader) readTypedef(decl frontend.Cursor, lines []string) error {
	if isFunctionPointer(decl.Type().Canonical()) {
		return r.readCallback(decl, lines)
	}

	children := decl.Children()
	if len(children) != 1 {
		return nil
	}
	if e, ok := r.index.Lookup(declKey(children[0].Type())); ok {
		donate(e, r.readName(decl))
	}
	return nil
}

func isFunctionPointer(t frontend.Type) bool {
	if t.Kind() == frontend.TypePointer {
		t = t.Pointee()
	}
	return t.Kind() == frontend.TypeFunctionProto || t.Kind() == frontend.TypeFunctionNoProto
}

// readCallback registers a function-pointer typedef under the typedef's own
// type, where pointer resolution looks for it.
func (r *Reader) readCallback(decl frontend.Cursor, lines []string) error {
	proto := decl.UnderlyingType()
	if proto.Kind() == frontend.TypePointer {
		proto = proto.Pointee()
	}
	result := proto.ResultType()
	if result.Kind() == frontend.TypeInvalid {
		canonical := decl.Type().Canonical()
		if canonical.Kind() == frontend.TypePointer {
			canonical = canonical.Pointee()
		}
		result = canonical.ResultType()
	}

	ret, err := r.resolver.Resolve(result)
	if err != nil {
		return fmt.Errorf("return type: %w", err)
	}

	callback := &model.Function{
		Name:              r.readName(decl),
		Return:            ret,
		IsCallback:        true,
		Description:       lines,
		ReturnDescription: []string{},
	}
	for _, child := range decl.Children() {
		if child.Kind() != frontend.CursorParmDecl {
			continue
		}
		param, err := r.readParameter(child)
		if err != nil {
			return err
		}
		callback.Parameters = append(callback.Parameters, param)
	}

	r.index.Set(model.KeyOfType(decl.Type()), callback)
	return nil
}

func (r *Reader) readMacro(decl frontend.Cursor) {
	tokens := r.unit.Tokenize(decl.Extent())
	if len(tokens) <= 1 {
		return
	}
	macroName := r.readName(decl)
	expr, value, err := evaluate(tokens[1:])
	if err != nil {
		r.skip("macro", macroName.Raw, err)
		return
	}
	r.index.Add(model.MacroKey(macroName.Raw), &model.Constant{
		Name:  macroName,
		Expr:  expr,
		Value: value,
	})
}
