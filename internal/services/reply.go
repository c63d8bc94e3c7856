package services

import (
	"encoding/json"
	"fmt"

	"github.com/prajwalbhunte45/chatbot-project/internal/models"
)

// Reply shape labels, also used as metric label values.
const (
	ShapeOutputText = "output_text"
	ShapeText       = "text"
	ShapeGeneric    = "generic"
)

const emptyResultPlaceholder = "<empty provider response>"

// Reply is the decoded form of a provider result. It is one of
// OutputTextReply, TextReply or GenericReply.
type Reply interface {
	Shape() string
	String() string
}

type OutputTextReply struct{ Value string }

func (r OutputTextReply) Shape() string  { return ShapeOutputText }
func (r OutputTextReply) String() string { return r.Value }

type TextReply struct{ Value string }

func (r TextReply) Shape() string  { return ShapeText }
func (r TextReply) String() string { return r.Value }

// GenericReply is the rendering of a result that exposed no usable text.
type GenericReply struct{ Rendered string }

func (r GenericReply) Shape() string  { return ShapeGeneric }
func (r GenericReply) String() string { return r.Rendered }

// DecodeReply picks the first shape that matches, in fixed order: output
// text, then text, then a rendering of the whole result. Empty strings do
// not match.
func DecodeReply(res models.ProviderResult) Reply {
	if res.OutputText != nil && *res.OutputText != "" {
		return OutputTextReply{Value: *res.OutputText}
	}
	if res.Text != nil && *res.Text != "" {
		return TextReply{Value: *res.Text}
	}
	return GenericReply{Rendered: renderGeneric(res.Raw)}
}

// renderGeneric is deterministic for a given value and never returns "".
func renderGeneric(raw interface{}) string {
	if raw == nil {
		return emptyResultPlaceholder
	}

	if b, err := json.Marshal(raw); err == nil {
		if s := string(b); s != "null" && s != `""` {
			return s
		}
		return emptyResultPlaceholder
	}

	if s := fmt.Sprintf("%v", raw); s != "" {
		return s
	}
	return emptyResultPlaceholder
}
