package analysis

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"farmai-backend/internal/geo"
	"farmai-backend/internal/shared/server/respond"
)

// Handler exposes the analysis endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/point-info", h.pointInfo)
	rg.POST("/analyze", h.analyze)
	rg.POST("/recommendations", h.recommendations)
	rg.POST("/elevation-profile", h.elevationProfile)
	rg.GET("/geocode", h.geocode)
}

func (h *Handler) pointInfo(c *gin.Context) {
	var req PointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	respond.OK(c, h.Svc.PointInfo(c.Request.Context(), *req.Lat, *req.Lng))
}

func (h *Handler) analyze(c *gin.Context) {
	var req PolygonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	result, err := h.Svc.Analyze(c.Request.Context(), req.Coordinates, *req.AreaAcres)
	if err != nil {
		switch {
		case errors.Is(err, geo.ErrTooFewPoints):
			respond.Error(c, http.StatusBadRequest, "invalid_polygon", "Polygon must have at least 3 points", nil)
		case errors.Is(err, geo.ErrInvalidPolygon):
			respond.Error(c, http.StatusBadRequest, "invalid_polygon", "Invalid polygon coordinates", []map[string]string{
				{"field": "coordinates", "issue": err.Error()},
			})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "analysis failed", nil)
		}
		return
	}
	c.Set("analysisId", result.AnalysisID)
	respond.OK(c, result)
}

func (h *Handler) recommendations(c *gin.Context) {
	var req PointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	respond.OK(c, h.Svc.Recommendations(*req.Lat, *req.Lng))
}

func (h *Handler) elevationProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	respond.OK(c, h.Svc.ElevationProfile(c.Request.Context(), req.Coordinates))
}

func (h *Handler) geocode(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	respond.OK(c, gin.H{"results": h.Svc.Geocode(c.Request.Context(), q)})
}
