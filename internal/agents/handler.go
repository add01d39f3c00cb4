package agents

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farmai-backend/internal/shared/server/respond"
)

// Handler exposes the agent endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches agent routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/agent/remediation", h.remediation)
	rg.POST("/agent/procurement", h.procurement)
	rg.POST("/agent/finance", h.finance)
}

func (h *Handler) remediation(c *gin.Context) {
	c.Set("agent", AgentRemediation)
	var req RemediationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	out, err := h.Svc.Remediate(c.Request.Context(), req)
	h.reply(c, out, err)
}

func (h *Handler) procurement(c *gin.Context) {
	c.Set("agent", AgentProcurement)
	var req ProcurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	if !isObject(req.AmendmentPlan) {
		respond.BindError(c, errors.New("amendment_plan "+ErrNotObject.Error()))
		return
	}
	out, err := h.Svc.Procure(c.Request.Context(), req)
	h.reply(c, out, err)
}

func (h *Handler) finance(c *gin.Context) {
	c.Set("agent", AgentFinance)
	var req FinanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	if !isObject(req.SoilData) {
		respond.BindError(c, errors.New("soil_data "+ErrNotObject.Error()))
		return
	}
	out, err := h.Svc.DraftGrant(c.Request.Context(), req)
	h.reply(c, out, err)
}

func (h *Handler) reply(c *gin.Context, out json.RawMessage, err error) {
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "agent_error", "Agent error: "+err.Error(), nil)
		return
	}
	respond.OK(c, out)
}
