package voice

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ConvertVoice(t *testing.T) {
	var gotModel string
	var gotAudio []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/voice-conversion/voice-123", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		gotModel = r.FormValue("model")
		file, _, err := r.FormFile("audio")
		require.NoError(t, err)
		gotAudio, err = io.ReadAll(file)
		require.NoError(t, err)

		_, _ = w.Write([]byte("converted audio"))
	}))
	defer server.Close()

	client := New(server.URL, "key", "voice-conversion-v1")
	converted, err := client.ConvertVoice(context.Background(), []byte("source audio"), "source_audio", "voice-123")

	require.NoError(t, err)
	assert.Equal(t, []byte("converted audio"), converted)
	assert.Equal(t, "voice-conversion-v1", gotModel)
	assert.Equal(t, []byte("source audio"), gotAudio)
}

func TestClient_ConvertVoice_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unsupported sample rate", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := New(server.URL, "key", "voice-conversion-v1")
	_, err := client.ConvertVoice(context.Background(), []byte("source audio"), "source_audio", "voice-123")

	assert.Error(t, err)
}
