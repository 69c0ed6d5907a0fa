package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"docconnect/config"
	"docconnect/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *GeminiClient {
	return NewGeminiClient(config.LLMConfig{
		APIKey:   "test-key",
		Model:    "gemini-test",
		Endpoint: url,
		Timeout:  2 * time.Second,
	}, logger.Discard())
}

func TestGeminiClient_Summarize(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Patient reports "},{"text":"mild headaches."}]}}]}`))
	}))
	defer srv.Close()

	summary, err := newTestClient(srv.URL).Summarize(context.Background(), "Doctor: how are you?\nPatient: headaches.")
	require.NoError(t, err)
	assert.Equal(t, "Patient reports mild headaches.", summary)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.True(t, strings.HasSuffix(got.Contents[0].Parts[0].Text, "Transcript: Doctor: how are you?\nPatient: headaches."))
}

func TestGeminiClient_EmptyTranscript(t *testing.T) {
	_, err := newTestClient("http://unused").Summarize(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidTranscript)
}

func TestGeminiClient_ProviderFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "error status", status: http.StatusInternalServerError, body: `{"error":{"message":"boom"}}`},
		{name: "malformed body", status: http.StatusOK, body: `{"candidates":`},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Summarize(context.Background(), "transcript")
			assert.ErrorIs(t, err, ErrSummaryFailed)
		})
	}
}

func TestGeminiClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Summarize(ctx, "transcript")
	assert.ErrorIs(t, err, ErrSummaryFailed)
}
