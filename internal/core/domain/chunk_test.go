package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PointID
	}{
		{"string uuid", `"6f1c2d4e-0000-4a5b-9c1d-2e3f4a5b6c7d"`, "6f1c2d4e-0000-4a5b-9c1d-2e3f4a5b6c7d"},
		{"integer", `42`, "42"},
		{"large integer", `18446744073709551615`, "18446744073709551615"},
		{"null", `null`, ""},
		{"string with spaces", ` "p1" `, "p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id PointID
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &id))
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestPointID_UnmarshalJSON_RejectsObjects(t *testing.T) {
	var id PointID
	err := json.Unmarshal([]byte(`{"id":1}`), &id)
	assert.Error(t, err)
}

func TestPointID_InStruct(t *testing.T) {
	var payload struct {
		Results []struct {
			ID PointID `json:"id"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"results":[{"id":7},{"id":"abc"}]}`), &payload))
	require.Len(t, payload.Results, 2)
	assert.Equal(t, PointID("7"), payload.Results[0].ID)
	assert.Equal(t, "abc", payload.Results[1].ID.String())
}

func TestChunk_Label(t *testing.T) {
	assert.Equal(t, "ID: p1", Chunk{ID: "p1"}.Label())
}

func TestChunk_DisplayContent(t *testing.T) {
	assert.Equal(t, "hello", Chunk{Content: "hello"}.DisplayContent())
	assert.Equal(t, EmptyContentPlaceholder, Chunk{}.DisplayContent())
}
