package planner

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

// RepairBranchKey is the gin context key the request logger reads.
const RepairBranchKey = "repairBranch"

type Handler struct {
	Engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{Engine: engine}
}

// RegisterRoutes attaches the plan route; extra handlers (rate limiting) run first.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, pre ...gin.HandlerFunc) {
	rg.POST("/career/plan", append(pre, h.generate)...)
}

func (h *Handler) generate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		metrics.IncPlanOutcome("invalid")
		respond.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Engine.Generate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			metrics.IncPlanOutcome("invalid")
			respond.Fail(c, http.StatusBadRequest, "No answers provided.")
		default:
			metrics.IncPlanOutcome("upstream_error")
			telemetry.Error("planner.generate_failed", map[string]any{
				"error":      err,
				"user_id":    middleware.UserIDFromContext(c),
				"request_id": c.GetString("requestId"),
			})
			respond.Fail(c, http.StatusBadGateway, "Failed to fetch career recommendations")
		}
		return
	}

	c.Set(RepairBranchKey, result.Branch.String())
	metrics.IncPlanOutcome("ok")
	respond.Success(c, result)
}
