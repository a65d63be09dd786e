package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"relgraph/web"
)

// PageHandler serves the single explorer page.
type PageHandler struct {
	logger *zap.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(logger *zap.Logger) *PageHandler {
	return &PageHandler{logger: logger}
}

// GetPage handles GET /. Any other path falls through to a 404 so broken
// asset links fail loudly instead of returning the page.
func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(web.Index()); err != nil {
		h.logger.Warn("Failed to write page", zap.Error(err))
	}
}
