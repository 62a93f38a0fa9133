package dump

import (
	"bytes"
	"encoding/json"
	"go/constant"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ffigen/frontend"
	"ffigen/model"
	"ffigen/name"
)

func sampleIndex() *model.Index {
	idx := model.NewIndex()

	widget := &model.StructOrUnion{
		Name:        name.Tokenize("Widget", nil),
		Description: []string{"", "  A widget.", ""},
		Fields: []model.Field{
			{Name: name.Tokenize("type", nil), Type: model.Primitive{Kind: frontend.TypeInt}},
		},
	}
	create := &model.Function{
		Name:   name.Tokenize("WidgetCreate", nil),
		Return: widget,
		Parameters: []model.Parameter{
			{Name: name.Tokenize("size", nil), Type: model.Primitive{Kind: frontend.TypeUInt}, IsArray: true},
		},
		IsBlocking: true,
	}
	widget.Methods = []model.Method{{Name: name.New("create"), Function: create}}

	idx.Set(model.MacroKey("Widget"), widget)
	idx.Set(model.MacroKey("WidgetCreate"), create)
	idx.Set(model.MacroKey("Mode"), &model.Enum{
		Name: name.Tokenize("Mode", nil),
		Constants: []model.EnumConstant{
			{Name: name.Tokenize("MODE_FAST", nil), Value: 0},
			{Name: name.Tokenize("MODE_SLOW", nil), Value: 4},
		},
	})
	idx.Set(model.MacroKey("OnDone"), &model.Function{
		Name:       name.Tokenize("OnDone", nil),
		Return:     model.Primitive{Kind: frontend.TypeVoid},
		IsCallback: true,
	})
	idx.Set(model.MacroKey("MAX_SIZE"), &model.Constant{
		Name:  name.Tokenize("MAX_SIZE", nil),
		Expr:  "1<<4",
		Value: constant.MakeInt64(16),
	})
	idx.Set(model.MacroKey("3D"), &model.StructOrUnion{Name: name.Tokenize("3D_Point", nil), IsUnion: true})
	return idx
}

func TestBuild(t *testing.T) {
	doc := Build(sampleIndex(), Options{Module: "Gfx", Reserved: []string{"type"}})

	require.Len(t, doc.Records, 2)
	widget := doc.Records[0]
	assert.Equal(t, "Widget", widget.Ident)
	assert.Equal(t, "struct", widget.Kind)
	assert.Equal(t, []string{"A widget."}, widget.Description)
	assert.Equal(t, "type_", widget.Fields[0].Ident, "reserved words get a suffix")
	assert.Equal(t, []Method{{Name: "create", Function: "WidgetCreate"}}, widget.Methods)

	point := doc.Records[1]
	assert.Equal(t, "union", point.Kind)
	assert.Equal(t, "ThreeDPoint", point.Ident)

	require.Len(t, doc.Functions, 1)
	fn := doc.Functions[0]
	assert.Equal(t, "widget_create", fn.Ident)
	assert.Equal(t, "struct Widget", fn.Return)
	assert.True(t, fn.Blocking)
	assert.True(t, fn.Parameters[0].Array)

	require.Len(t, doc.Callbacks, 1)
	assert.Equal(t, "OnDone", doc.Callbacks[0].Ident)

	require.Len(t, doc.Enums, 1)
	assert.Equal(t, "fast", doc.Enums[0].Constants[0].Short)
	assert.Equal(t, int64(4), doc.Enums[0].Constants[1].Value)

	require.Len(t, doc.Constants, 1)
	assert.Equal(t, Constant{Name: "MAX_SIZE", Ident: "MAX_SIZE", Expr: "1<<4", Value: "16"}, doc.Constants[0])
}

func TestWriteFormats(t *testing.T) {
	doc := Build(sampleIndex(), Options{Module: "Gfx"})

	var yamlOut bytes.Buffer
	require.NoError(t, Write(&yamlOut, doc, "yaml"))
	var fromYAML Document
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &fromYAML))
	assert.Equal(t, "Gfx", fromYAML.Module)
	assert.Len(t, fromYAML.Records, 2)

	var jsonOut bytes.Buffer
	require.NoError(t, Write(&jsonOut, doc, "json"))
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &fromJSON))
	assert.Contains(t, fromJSON, "enums")

	assert.Error(t, Write(&jsonOut, doc, "xml"))
}

func TestQuery(t *testing.T) {
	doc := Build(sampleIndex(), Options{})

	got, err := Query(doc, ".records[].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Widget", "3D_Point"}, got)

	got, err = Query(doc, `.enums[0].constants | map(.value) | add`)
	require.NoError(t, err)
	assert.Equal(t, []any{float64(4)}, got)

	_, err = Query(doc, ".records[")
	assert.Error(t, err)

	_, err = Query(doc, `error("boom")`)
	assert.Error(t, err)
}
