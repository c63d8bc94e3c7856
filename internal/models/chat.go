package models

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply returned for every chat request, including
// canned and error replies.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ProviderResult is what a provider adapter hands back to the relay.
// OutputText and Text are only set when the provider actually exposed a
// string under that name. Raw holds the whole provider response.
type ProviderResult struct {
	OutputText *string
	Text       *string
	Raw        interface{}
}
