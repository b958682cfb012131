package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *GeminiClient {
	c := NewGeminiClient("test-key", "gemini-1.5-flash", 0.7, 5*time.Second)
	c.baseURL = serverURL + "/models/%s:generateContent"
	return c
}

func candidateBody(text string) string {
	quoted, _ := json.Marshal(text)
	return `{"candidates":[{"content":{"parts":[{"text":` + string(quoted) + `}]}}]}`
}

func TestGenerate_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash")
		w.Write([]byte(candidateBody("What is a closure?")))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).Generate(context.Background(), "ask me something")
	require.NoError(t, err)
	assert.Equal(t, "What is a closure?", text)
}

func TestGenerate_ProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"backend blew up","status":"INTERNAL"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestGenerate_NoCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGenerateJSON_StripsCodeFence(t *testing.T) {
	t.Parallel()

	fenced := "```json\n{\"score\": 7}\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody(fenced)))
	}))
	defer srv.Close()

	var out struct {
		Score int `json:"score"`
	}
	err := newTestClient(srv.URL).GenerateJSON(context.Background(), "prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, 7, out.Score)
}

func TestGenerateJSON_Malformed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody("here is your score: seven out of ten")))
	}))
	defer srv.Close()

	var out struct{}
	err := newTestClient(srv.URL).GenerateJSON(context.Background(), "prompt", &out)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCleanJSONResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cleanJSONResponse(tt.in))
		})
	}
}
