package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gemma3:270m", req["model"])
		assert.Equal(t, "hello", req["prompt"])
		assert.Equal(t, false, req["stream"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"response": "hi there"})
	}))
	defer server.Close()

	c := NewClient(server.URL, "gemma3:270m")
	text, err := c.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)
}

func TestGenerateErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, "missing")
	_, err := c.Generate(context.Background(), "hello")
	assert.Error(t, err)
}

func TestGenerateUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "gemma3:270m")
	_, err := c.Generate(context.Background(), "hello")
	assert.Error(t, err)
}
