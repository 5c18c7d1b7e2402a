package planner_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-backend/internal/llm"
	"career-backend/internal/planner"
)

func newRouter(client llm.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	planner.NewHandler(planner.NewEngine(client, 2, 10)).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postPlan(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/career/plan", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestPlanEndpointSuccess(t *testing.T) {
	router := newRouter(llm.ClientFunc(func(ctx context.Context, system, prompt string) (string, error) {
		return `{"recommendations":[{"career":"Data Analyst","reason":"r"}],"top_career":"Data Analyst","topics":["SQL"]}`, nil
	}))

	resp := postPlan(router, `{"answers":["I like data"],"known_topics":[]}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.JSONEq(t, `{"success":true,"data":{
		"recommendations":[{"career":"Data Analyst","reason":"r"}],
		"top_career":"Data Analyst",
		"topics":["SQL"],
		"action_plan":{
			"selected_career":"Data Analyst",
			"missing_topics":["SQL"],
			"daily_schedule":{"SQL":"2.0h"},
			"weekly_schedule":{"Mon":{"SQL":"1.43h"},"Tue":{"SQL":"1.43h"},"Wed":{"SQL":"1.43h"},"Thu":{"SQL":"1.43h"},"Fri":{"SQL":"1.43h"},"Sat":{"SQL":"1.43h"},"Sun":{"SQL":"1.43h"}},
			"starter_guide":"Step-by-step guide to become a Data Analyst: Learn SQL, practice projects, build portfolio, and develop skills over 6-12 months."
		}}}`, resp.Body.String())
}

func TestPlanEndpointEmptyAnswers(t *testing.T) {
	router := newRouter(llm.PlaceholderClient{})

	for _, body := range []string{``, `{}`, `{"answers":[]}`} {
		resp := postPlan(router, body)
		assert.Equal(t, http.StatusBadRequest, resp.Code, body)
		assert.JSONEq(t, `{"success":false,"message":"No answers provided."}`, resp.Body.String(), body)
	}
}

func TestPlanEndpointUpstreamFailure(t *testing.T) {
	router := newRouter(llm.ClientFunc(func(ctx context.Context, system, prompt string) (string, error) {
		return "", errors.New("connection refused")
	}))

	resp := postPlan(router, `{"answers":["a"]}`)
	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.JSONEq(t, `{"success":false,"message":"Failed to fetch career recommendations"}`, resp.Body.String())
}

func TestPlanEndpointMalformedBody(t *testing.T) {
	router := newRouter(llm.PlaceholderClient{})

	resp := postPlan(router, `{"answers":"not-a-list"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
