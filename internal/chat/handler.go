package chat

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farmai-backend/internal/shared/server/respond"
)

// Handler exposes the chat endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

func (h *Handler) chat(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	if ctx := bytes.TrimSpace(req.Context); len(ctx) > 0 && ctx[0] != '{' && !bytes.Equal(ctx, []byte("null")) {
		respond.BindError(c, errors.New("context must be a JSON object"))
		return
	}

	reply, err := h.Svc.Answer(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "chat_error", "Chat error: "+err.Error(), nil)
		return
	}
	respond.OK(c, reply)
}
