package progress

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/progress", h.update)
	rg.GET("/progress", h.snapshot)
	rg.GET("/progress/chart", h.chart)
}

type updateRequest struct {
	Topic      string   `json:"topic"`
	Percentage *float64 `json:"percentage"`
}

func (h *Handler) update(c *gin.Context) {
	user := sessionUser(c)
	if user == "" {
		respond.Fail(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	var req updateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Fail(c, http.StatusBadRequest, "Missing data")
			return
		}
	}
	if req.Percentage == nil {
		respond.Fail(c, http.StatusBadRequest, "Missing data")
		return
	}
	if err := h.Svc.Update(user, req.Topic, *req.Percentage); err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			respond.Fail(c, http.StatusUnauthorized, "Not logged in")
		default:
			respond.Fail(c, http.StatusBadRequest, "Missing data")
		}
		return
	}
	metrics.IncProgressUpdate()
	respond.Message(c, fmt.Sprintf("Progress updated for %s", req.Topic))
}

func (h *Handler) snapshot(c *gin.Context) {
	snap, err := h.Svc.Snapshot(sessionUser(c))
	if err != nil {
		respond.Fail(c, http.StatusUnauthorized, "Not logged in")
		return
	}
	respond.Success(c, snap)
}

func (h *Handler) chart(c *gin.Context) {
	img, err := h.Svc.RenderChart(sessionUser(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			metrics.IncChartRender("unauthenticated")
			respond.Text(c, http.StatusUnauthorized, "Not logged in")
		case errors.Is(err, ErrNoData):
			metrics.IncChartRender("no_data")
			respond.Text(c, http.StatusBadRequest, "No progress data to display")
		default:
			metrics.IncChartRender("error")
			telemetry.Error("progress.chart_failed", map[string]any{"error": err})
			respond.Text(c, http.StatusInternalServerError, "Failed to render chart")
		}
		return
	}
	metrics.IncChartRender("ok")
	c.Data(http.StatusOK, "image/png", img)
}

// sessionUser returns the signed-in username. Guest identities do not own progress.
func sessionUser(c *gin.Context) string {
	if middleware.IsGuest(c) {
		return ""
	}
	return middleware.UserIDFromContext(c)
}
