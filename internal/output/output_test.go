package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agusespa/classweave/internal/types"
)

var results = []types.FileResult{
	{
		File: "/workspace/tests/TestCase1.java",
		Structure: &types.FileStructure{Classes: []types.ClassInfo{
			{Name: "TestCase1", Methods: []string{"run"}, Fields: []string{}},
		}},
	},
	{File: "/workspace/tests/Broken.java", Error: "parse error"},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestWrite_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, FormatJSON))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "/workspace/tests/TestCase1.java", decoded[0]["file"])
	structure := decoded[0]["structure"].(map[string]any)
	class := structure["classes"].([]any)[0].(map[string]any)
	assert.Equal(t, "TestCase1", class["name"])
	assert.Equal(t, []any{"run"}, class["methods"])
	assert.Equal(t, []any{}, class["variables"])
	assert.NotContains(t, decoded[0], "error")

	assert.Equal(t, "parse error", decoded[1]["error"])
	assert.NotContains(t, decoded[1], "structure")
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, FormatYAML))

	var decoded []types.FileResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, results, decoded)
	assert.Contains(t, buf.String(), "variables: []")
}

func TestWrite_EmptyResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, results, Format("xml")))
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, "json, yaml", FormatNames())

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supported: json, yaml")
}
