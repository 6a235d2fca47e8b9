package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Synthesize(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/text-to-speech/voice-123", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte("binary audio"))
	}))
	defer server.Close()

	client := New(server.URL, "key", "multilingual-v2")
	audio, err := client.Synthesize(context.Background(), "hello world", "voice-123")

	require.NoError(t, err)
	assert.Equal(t, []byte("binary audio"), audio)
	assert.Equal(t, "hello world", gotBody["text"])
	assert.Equal(t, "multilingual-v2", gotBody["model"])
}

func TestClient_Synthesize_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, "key", "multilingual-v2")
	_, err := client.Synthesize(context.Background(), "hello", "voice-123")

	assert.Error(t, err)
}
