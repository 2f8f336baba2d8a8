package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloatUnmarshal(t *testing.T) {
	var in struct {
		Price FlexFloat `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price": 79.5}`), &in))
	assert.Equal(t, FlexFloat(79.5), in.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"price": "120"}`), &in))
	assert.Equal(t, FlexFloat(120), in.Price)

	in.Price = 5
	require.NoError(t, json.Unmarshal([]byte(`{"price": ""}`), &in))
	assert.Equal(t, FlexFloat(0), in.Price)

	assert.Error(t, json.Unmarshal([]byte(`{"price": "abc"}`), &in))
}

func TestFlexIntUnmarshal(t *testing.T) {
	var in struct {
		Age FlexInt `json:"age"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"age": 34}`), &in))
	assert.Equal(t, FlexInt(34), in.Age)

	require.NoError(t, json.Unmarshal([]byte(`{"age": "41"}`), &in))
	assert.Equal(t, FlexInt(41), in.Age)

	in.Age = 7
	require.NoError(t, json.Unmarshal([]byte(`{"age": ""}`), &in))
	assert.Equal(t, FlexInt(0), in.Age)

	assert.Error(t, json.Unmarshal([]byte(`{"age": "4.5"}`), &in))
}
