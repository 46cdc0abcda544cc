package meta

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/internal/derive/ast"
	"github.com/quill-lang/quill/internal/derive/bounds"
)

func sampleRecord() *ast.Record {
	return &ast.Record{
		Name:   "Command",
		Params: []*ast.GenericParam{{Name: "T"}},
		Fields: []*ast.Field{
			{Name: "executable", Type: ast.Path("String")},
			{
				Name:  "args",
				Type:  ast.Generic("List", ast.Path("String")),
				Attrs: []*ast.Attribute{{Name: "builder", Args: `each = "arg"`}},
			},
		},
	}
}

func TestExtract(t *testing.T) {
	clause := &bounds.Clause{
		Params: []bounds.Param{{Name: "T", Bounds: []string{"Show"}}},
		Where:  []string{"T.Value: Show"},
	}
	methods := []MethodMetadata{
		{Name: "builder", Kind: "builder"},
		{Name: "build", Kind: "build"},
	}

	s := Extract(sampleRecord(), "builder", clause, methods)

	assert.Equal(t, "Command", s.Record)
	assert.Equal(t, "builder", s.Target)
	assert.NotEmpty(t, s.ArtifactID)
	assert.NotEmpty(t, s.SourceHash)
	require.Len(t, s.Params, 1)
	assert.Equal(t, []string{"Show"}, s.Params[0].Bounds)
	assert.Equal(t, []string{"T.Value: Show"}, s.Where)
	assert.Equal(t, methods, s.Methods)
}

func TestExtract_ArtifactIDsAreUnique(t *testing.T) {
	clause := &bounds.Clause{}
	a := Extract(sampleRecord(), "builder", clause, nil)
	b := Extract(sampleRecord(), "builder", clause, nil)
	assert.NotEqual(t, a.ArtifactID, b.ArtifactID)
}

func TestSourceHash_StableAndSensitive(t *testing.T) {
	clause := &bounds.Clause{}

	first := Extract(sampleRecord(), "builder", clause, nil)
	second := Extract(sampleRecord(), "builder", clause, nil)
	assert.Equal(t, first.SourceHash, second.SourceHash,
		"identical declarations must hash identically")

	changed := sampleRecord()
	changed.Fields[0].Name = "binary"
	third := Extract(changed, "builder", clause, nil)
	assert.NotEqual(t, first.SourceHash, third.SourceHash,
		"renaming a field must change the hash")

	reattributed := sampleRecord()
	reattributed.Fields[1].Attrs[0].Args = `each = "flag"`
	fourth := Extract(reattributed, "builder", clause, nil)
	assert.NotEqual(t, first.SourceHash, fourth.SourceHash,
		"changing an attribute must change the hash")
}

func TestSerialize(t *testing.T) {
	s := Extract(sampleRecord(), "debug", &bounds.Clause{}, []MethodMetadata{{Name: "show", Kind: "show"}})

	data, err := Serialize(s)
	require.NoError(t, err)

	var decoded Synthesis
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s.Record, decoded.Record)
	assert.Equal(t, s.ArtifactID, decoded.ArtifactID)
	assert.Equal(t, s.Methods, decoded.Methods)
}

func TestSerialize_NilRejected(t *testing.T) {
	_, err := Serialize(nil)
	assert.Error(t, err)
}
