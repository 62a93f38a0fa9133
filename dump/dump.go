// Package dump renders a declaration index as YAML or JSON, the form the
// CLI prints and binding emitters can be tested against.
package dump

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"ffigen/comment"
	"ffigen/model"
	"ffigen/name"
)

// Document is the serialisable view of one index.
type Document struct {
	Module    string     `yaml:"module,omitempty" json:"module,omitempty"`
	Library   string     `yaml:"library,omitempty" json:"library,omitempty"`
	Records   []Record   `yaml:"records,omitempty" json:"records,omitempty"`
	Enums     []Enum     `yaml:"enums,omitempty" json:"enums,omitempty"`
	Functions []Function `yaml:"functions,omitempty" json:"functions,omitempty"`
	Callbacks []Function `yaml:"callbacks,omitempty" json:"callbacks,omitempty"`
	Constants []Constant `yaml:"constants,omitempty" json:"constants,omitempty"`
}

type Record struct {
	Name        string   `yaml:"name" json:"name"`
	Ident       string   `yaml:"ident" json:"ident"`
	Kind        string   `yaml:"kind" json:"kind"`
	Description []string `yaml:"description,omitempty" json:"description,omitempty"`
	Fields      []Field  `yaml:"fields,omitempty" json:"fields,omitempty"`
	Methods     []Method `yaml:"methods,omitempty" json:"methods,omitempty"`
}

type Field struct {
	Name        string   `yaml:"name" json:"name"`
	Ident       string   `yaml:"ident" json:"ident"`
	Type        string   `yaml:"type" json:"type"`
	Description []string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Method struct {
	Name     string `yaml:"name" json:"name"`
	Function string `yaml:"function" json:"function"`
}

type Enum struct {
	Name        string         `yaml:"name" json:"name"`
	Ident       string         `yaml:"ident" json:"ident"`
	Description []string       `yaml:"description,omitempty" json:"description,omitempty"`
	Constants   []EnumConstant `yaml:"constants" json:"constants"`
}

type EnumConstant struct {
	Name        string   `yaml:"name" json:"name"`
	Short       string   `yaml:"short" json:"short"`
	Value       int64    `yaml:"value" json:"value"`
	Description []string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Function struct {
	Name        string      `yaml:"name" json:"name"`
	Ident       string      `yaml:"ident" json:"ident"`
	Return      string      `yaml:"return" json:"return"`
	Blocking    bool        `yaml:"blocking,omitempty" json:"blocking,omitempty"`
	Parameters  []Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Description []string    `yaml:"description,omitempty" json:"description,omitempty"`
	Returns     []string    `yaml:"returns,omitempty" json:"returns,omitempty"`
}

type Parameter struct {
	Name        string   `yaml:"name" json:"name"`
	Type        string   `yaml:"type" json:"type"`
	Array       bool     `yaml:"array,omitempty" json:"array,omitempty"`
	Description []string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Constant struct {
	Name  string `yaml:"name" json:"name"`
	Ident string `yaml:"ident" json:"ident"`
	Expr  string `yaml:"expr" json:"expr"`
	Value string `yaml:"value" json:"value"`
}

// Options controls how identifiers are rendered.
type Options struct {
	Module   string
	Library  string
	Reserved []string
}

// Build converts idx into a Document. Descriptions are tidied and every
// name gets a binding identifier next to its C spelling.
func Build(idx *model.Index, opts Options) Document {
	doc := Document{Module: opts.Module, Library: opts.Library}
	typeIdent := func(n name.Name) string {
		return n.Format(opts.Reserved, name.CamelCase, name.SpellDigits)
	}
	memberIdent := func(n name.Name) string {
		return n.Format(opts.Reserved, name.Lower, name.Underscores)
	}

	for _, e := range idx.Entities() {
		switch v := e.(type) {
		case *model.StructOrUnion:
			r := Record{
				Name:        v.Name.String(),
				Ident:       typeIdent(v.Name),
				Kind:        "struct",
				Description: comment.Tidy(v.Description),
			}
			if v.IsUnion {
				r.Kind = "union"
			}
			for _, f := range v.Fields {
				r.Fields = append(r.Fields, Field{
					Name:        f.Name.String(),
					Ident:       memberIdent(f.Name),
					Type:        model.Describe(f.Type),
					Description: comment.Tidy(f.Description),
				})
			}
			for _, m := range v.Methods {
				r.Methods = append(r.Methods, Method{
					Name:     memberIdent(m.Name),
					Function: m.Function.Name.String(),
				})
			}
			doc.Records = append(doc.Records, r)

		case *model.Enum:
			en := Enum{
				Name:        v.Name.String(),
				Ident:       typeIdent(v.Name),
				Description: comment.Tidy(v.Description),
				Constants:   []EnumConstant{},
			}
			short := v.ShortenedNames()
			for i, c := range v.Constants {
				en.Constants = append(en.Constants, EnumConstant{
					Name:        c.Name.String(),
					Short:       memberIdent(short[i]),
					Value:       c.Value,
					Description: comment.Tidy(c.Comment),
				})
			}
			doc.Enums = append(doc.Enums, en)

		case *model.Function:
			fn := Function{
				Name:        v.Name.String(),
				Ident:       memberIdent(v.Name),
				Return:      model.Describe(v.Return),
				Blocking:    v.IsBlocking,
				Description: comment.Tidy(v.Description),
				Returns:     comment.Tidy(v.ReturnDescription),
			}
			for _, p := range v.Parameters {
				fn.Parameters = append(fn.Parameters, Parameter{
					Name:        memberIdent(p.Name),
					Type:        model.Describe(p.Type),
					Array:       p.IsArray,
					Description: comment.Tidy(p.Description),
				})
			}
			if v.IsCallback {
				fn.Ident = typeIdent(v.Name)
				doc.Callbacks = append(doc.Callbacks, fn)
			} else {
				doc.Functions = append(doc.Functions, fn)
			}

		case *model.Constant:
			doc.Constants = append(doc.Constants, Constant{
				Name:  v.Name.String(),
				Ident: v.Name.Format(opts.Reserved, name.Upper, name.Underscores),
				Expr:  v.Expr,
				Value: v.Value.ExactString(),
			})
		}
	}
	return doc
}

// Write encodes v to w as "yaml" or "json".
func Write(w io.Writer, v any, format string) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
