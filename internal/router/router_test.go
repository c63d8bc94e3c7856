package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/prajwalbhunte45/chatbot-project/internal/handlers"
	"github.com/prajwalbhunte45/chatbot-project/internal/metrics"
	"github.com/prajwalbhunte45/chatbot-project/internal/models"
	"github.com/prajwalbhunte45/chatbot-project/internal/services"
	"github.com/prajwalbhunte45/chatbot-project/web"
)

type scriptedGenerator struct {
	calls  int
	result models.ProviderResult
	err    error
}

func (g *scriptedGenerator) Name() string { return "scripted" }
func (g *scriptedGenerator) Close() error { return nil }

func (g *scriptedGenerator) Generate(_ context.Context, _ string) (models.ProviderResult, error) {
	g.calls++
	return g.result, g.err
}

func newTestServer(t *testing.T, gen services.Generator) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	collector := metrics.NewCollector()
	relay := services.NewRelay(gen, log, collector)
	h := New(
		log,
		handlers.NewPageHandler(web.IndexHTML, web.Static()),
		handlers.NewChatHandler(relay),
		collector,
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func postChat(t *testing.T, srv *httptest.Server, body string) (int, models.ChatResponse) {
	t.Helper()
	res, err := http.Post(srv.URL+"/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()

	var out models.ChatResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func TestChat_Scenarios(t *testing.T) {
	text := "Hi there"

	tests := []struct {
		name      string
		body      string
		gen       *scriptedGenerator
		wantReply string
		wantCalls int
	}{
		{"empty object", `{}`, &scriptedGenerator{}, services.EmptyMessageReply, 0},
		{"whitespace message", `{"message": "   "}`, &scriptedGenerator{}, services.EmptyMessageReply, 0},
		{"malformed body", `{"message":`, &scriptedGenerator{}, services.EmptyMessageReply, 0},
		{"text reply", `{"message": "Hello"}`, &scriptedGenerator{result: models.ProviderResult{Text: &text}}, "Hi there", 1},
		{"provider timeout", `{"message": "Hello"}`, &scriptedGenerator{err: errors.New("timeout")}, "⚠️ Error: timeout", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, tc.gen)

			status, resp := postChat(t, srv, tc.body)
			require.Equal(t, http.StatusOK, status)
			require.Equal(t, tc.wantReply, resp.Reply)
			require.Equal(t, tc.wantCalls, tc.gen.calls)
		})
	}
}

func TestChat_NoContentTypeStillParsed(t *testing.T) {
	text := "pong"
	gen := &scriptedGenerator{result: models.ProviderResult{Text: &text}}
	srv := newTestServer(t, gen)

	res, err := http.Post(srv.URL+"/chat", "text/plain", strings.NewReader(`{"message":"ping"}`))
	require.NoError(t, err)
	defer res.Body.Close()

	var out models.ChatResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	require.Equal(t, "pong", out.Reply)
}

func TestIndexAndStaticAssets(t *testing.T) {
	srv := newTestServer(t, &scriptedGenerator{})

	res, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, res.Header.Get("Content-Type"), "text/html")
	require.Contains(t, string(body), `/static/js/script.js`)

	res, err = http.Get(srv.URL + "/static/js/script.js")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, &scriptedGenerator{})

	status, _ := postChat(t, srv, `{}`)
	require.Equal(t, http.StatusOK, status)

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	require.JSONEq(t, `{"status":"ok"}`, string(body))

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	require.Contains(t, string(body), `chatrelay_chat_requests_total{outcome="empty"} 1`)
}

func TestChat_GetNotAllowed(t *testing.T) {
	srv := newTestServer(t, &scriptedGenerator{})

	res, err := http.Get(srv.URL + "/chat")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
