package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prajwalbhunte45/chatbot-project/internal/metrics"
	"github.com/prajwalbhunte45/chatbot-project/internal/models"
)

const (
	EmptyMessageReply = "Please write something to start the chat."
	ErrorReplyPrefix  = "⚠️ Error: "
)

// Generator is a configured model that answers a single prompt.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (models.ProviderResult, error)
	Close() error
}

// Outcome is the result of one provider call: Ok or Err.
type Outcome interface {
	outcome()
}

type Ok struct {
	Text  string
	Shape string
}

type Err struct {
	Description string
}

func (Ok) outcome()  {}
func (Err) outcome() {}

// Relay turns a chat message into exactly one reply string. It holds no
// per-request state and is shared by all requests.
type Relay struct {
	gen     Generator
	log     *logrus.Logger
	metrics *metrics.Collector
}

func NewRelay(gen Generator, log *logrus.Logger, m *metrics.Collector) *Relay {
	return &Relay{gen: gen, log: log, metrics: m}
}

// Reply answers message. Provider failures come back as a warning-prefixed
// string, never as an error.
func (r *Relay) Reply(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		r.metrics.RecordChat(metrics.OutcomeEmpty)
		return EmptyMessageReply
	}

	switch out := r.Call(ctx, message).(type) {
	case Ok:
		r.metrics.RecordChat(metrics.OutcomeReply)
		r.metrics.RecordReplyShape(out.Shape)
		return out.Text
	case Err:
		r.metrics.RecordChat(metrics.OutcomeError)
		return ErrorReplyPrefix + out.Description
	default:
		r.metrics.RecordChat(metrics.OutcomeError)
		return ErrorReplyPrefix + "unknown relay outcome"
	}
}

// Call sends prompt to the provider once and decodes whatever comes back.
// A panic inside the provider adapter is reported as Err.
func (r *Relay) Call(ctx context.Context, prompt string) (out Outcome) {
	entry := r.log.WithField("provider", r.gen.Name())
	entry.WithField("message", prompt).Info("🔹 Sending to provider")

	start := time.Now()
	defer func() {
		r.metrics.ObserveProvider(r.gen.Name(), time.Since(start))
		if p := recover(); p != nil {
			entry.WithField("panic", p).Error("❌ Provider panicked")
			out = Err{Description: fmt.Sprint(p)}
		}
	}()

	res, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		entry.WithError(err).Error("❌ Provider error")
		return Err{Description: err.Error()}
	}

	reply := DecodeReply(res)
	entry.WithFields(logrus.Fields{
		"raw":   renderGeneric(res.Raw),
		"shape": reply.Shape(),
	}).Info("🔹 Provider raw response")

	return Ok{Text: reply.String(), Shape: reply.Shape()}
}
