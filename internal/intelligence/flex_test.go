package intelligence

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat(t *testing.T) {
	var v struct {
		A flexFloat `json:"a"`
		B flexFloat `json:"b"`
		C flexFloat `json:"c"`
		D flexFloat `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1.5, "b": "2.25", "c": null}`), &v))

	assert.Equal(t, 1.5, v.A.Or(0))
	assert.Equal(t, 2.25, v.B.Or(0))
	assert.Equal(t, 7.0, v.C.Or(7), "null falls back")
	assert.Equal(t, 7.0, v.D.Or(7), "absent falls back")
}

func TestFlexFloat_RejectsWords(t *testing.T) {
	var v struct {
		A flexFloat `json:"a"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"a": "lots"}`), &v))
}
