package handlers

import (
	"io/fs"
	"net/http"
)

// PageHandler serves the chat page and its static assets.
type PageHandler struct {
	index  []byte
	assets http.Handler
}

func NewPageHandler(index []byte, static fs.FS) *PageHandler {
	return &PageHandler{
		index:  index,
		assets: http.FileServer(http.FS(static)),
	}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(h.index)
}

// Static expects to be mounted under /static/.
func (h *PageHandler) Static() http.Handler {
	return http.StripPrefix("/static/", h.assets)
}
