package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"relgraph/application/explorer"
	"relgraph/pkg/errors"
)

// GraphHandler serves the styled graph document over plain HTTP.
type GraphHandler struct {
	svc          *explorer.Service
	logger       *zap.Logger
	errorHandler *errors.ErrorHandler
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(svc *explorer.Service, logger *zap.Logger, errorHandler *errors.ErrorHandler) *GraphHandler {
	return &GraphHandler{
		svc:          svc,
		logger:       logger,
		errorHandler: errorHandler,
	}
}

// GetGraph handles GET /api/graph. It returns the same document a fresh
// websocket session receives as its snapshot. With `?node=<name>` it
// returns that single character's view instead.
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("node"); name != "" {
		node, ok := h.svc.Node(name)
		if !ok {
			h.errorHandler.Handle(w, r, errors.NewNotFound("unknown character: "+name))
			return
		}
		h.writeJSON(w, node)
		return
	}

	h.writeJSON(w, h.svc.Document())
}

func (h *GraphHandler) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode graph document", zap.Error(err))
	}
}
