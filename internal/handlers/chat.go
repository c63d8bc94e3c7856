package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/prajwalbhunte45/chatbot-project/internal/models"
)

const maxChatBodyBytes = 1 << 20

// replier produces the reply text for one chat message.
type replier interface {
	Reply(ctx context.Context, message string) string
}

type ChatHandler struct {
	relay replier
}

func NewChatHandler(relay replier) *ChatHandler {
	return &ChatHandler{relay: relay}
}

// Chat always answers 200 with a reply, whatever the body looks like or
// the provider does.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	req := decodeChatRequest(http.MaxBytesReader(w, r.Body, maxChatBodyBytes))

	// A client disconnect does not cancel the provider call.
	ctx := context.WithoutCancel(r.Context())

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Reply: h.relay.Reply(ctx, req.Message),
	})
}

// decodeChatRequest never fails: a missing or malformed body, a non-object
// JSON value or a non-string message all yield an empty message.
func decodeChatRequest(body io.Reader) models.ChatRequest {
	var req models.ChatRequest
	if body == nil {
		return req
	}

	dec := json.NewDecoder(body)
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return req
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return req
	}

	raw, ok := fields["message"]
	if !ok {
		return req
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return req
	}
	req.Message = msg
	return req
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
