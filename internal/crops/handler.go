package crops

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/shared/server/middleware"
	"github.com/SHREYANK-RAJ/SIH-2025-Project/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the crops service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches crop recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/crops/recommend", h.recommend)
	rg.GET("/crops/history", h.listHistory)
	rg.GET("/crops/history/:id", h.getRecommendation)
}

type recommendRequest struct {
	SoilData          *SoilConditions    `json:"soilData" binding:"required"`
	WeatherData       *WeatherConditions `json:"weatherData" binding:"required"`
	FarmingConditions *FarmingConditions `json:"farmingConditions"`
}

func (h *Handler) recommend(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "soilData and weatherData are required", nil)
		return
	}

	farming := FarmingConditions{}
	if req.FarmingConditions != nil {
		farming = *req.FarmingConditions
	}

	record, err := h.Svc.CreateRecommendation(c.Request.Context(), userID, *req.SoilData, *req.WeatherData, farming)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate crop recommendations", nil)
		}
		return
	}

	c.Set("recommendationId", record.ID)
	c.Set("recommendationSource", record.Source)

	resp := gin.H{
		"recommendationId": record.ID,
		"recommendations":  record.Results,
		"source":           record.Source,
		"generatedAt":      record.CreatedAt,
	}
	if record.Source == SourceModel && record.ModelInfo != nil {
		resp["modelInfo"] = record.ModelInfo
	}
	if record.Source == SourceFallback {
		resp["fallback"] = true
		resp["warning"] = record.Warning
	}
	respond.OK(c, resp)
}

func (h *Handler) getRecommendation(c *gin.Context) {
	recommendationID := c.Param("id")
	if recommendationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "recommendation id is required", nil)
		return
	}

	record, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), recommendationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "recommendation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch recommendation", nil)
		}
		return
	}

	respond.OK(c, record)
}

func (h *Handler) listHistory(c *gin.Context) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
			return
		}
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	records, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch recommendation history", nil)
		return
	}

	respond.OK(c, gin.H{
		"recommendations": records,
		"limit":           limit,
		"offset":          offset,
	})
}
