package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-backend/internal/llm"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
)

const (
	DefaultDailyHours  = 2.0
	DefaultWeeklyHours = 10.0
	fallbackCareer     = "Data Analyst"
)

// Engine turns questionnaire answers into recommendations and an action plan.
// It calls the generation service once per request and never retries.
type Engine struct {
	LLM         llm.Client
	DailyHours  float64
	WeeklyHours float64
}

// NewEngine constructs an Engine. Non-positive budgets fall back to 2h/day and 10h/week.
func NewEngine(client llm.Client, dailyHours, weeklyHours float64) *Engine {
	if dailyHours <= 0 {
		dailyHours = DefaultDailyHours
	}
	if weeklyHours <= 0 {
		weeklyHours = DefaultWeeklyHours
	}
	return &Engine{LLM: client, DailyHours: dailyHours, WeeklyHours: weeklyHours}
}

// Request is the plan generation input.
type Request struct {
	Answers        []string `json:"answers"`
	KnownTopics    []string `json:"known_topics"`
	SelectedCareer string   `json:"selected_career"`
}

// Generate builds the plan for req. It fails with ErrInvalidInput when no answers
// are given and ErrUpstreamUnavailable when the generation call fails.
func (e *Engine) Generate(ctx context.Context, req Request) (Result, error) {
	if len(req.Answers) == 0 {
		return Result{}, ErrInvalidInput
	}
	if e == nil || e.LLM == nil {
		return Result{}, fmt.Errorf("%w: generation client not configured", ErrUpstreamUnavailable)
	}

	start := time.Now()
	raw, err := e.LLM.Complete(ctx, llm.CareerSystemPrompt, llm.CareerPrompt(req.Answers))
	metrics.ObserveLLMDuration(time.Since(start))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	rec, branch := Repair(raw)
	metrics.IncRepairBranch(branch.String())
	if branch != BranchStrict {
		telemetry.Warn("planner.repair", map[string]any{
			"branch":     branch.String(),
			"raw_length": len(raw),
		})
	}

	career := EffectiveCareer(rec, req.SelectedCareer)
	missing := TopicGap(rec.Topics, trimAll(req.KnownTopics))

	return Result{
		Recommendation: rec,
		ActionPlan: Plan{
			SelectedCareer: career,
			MissingTopics:  missing,
			DailySchedule:  DailyPlan(missing, e.DailyHours),
			WeeklySchedule: WeeklyPlan(missing, e.WeeklyHours),
			StarterGuide:   StarterGuide(career, missing),
		},
		Branch: branch,
	}, nil
}

// EffectiveCareer picks the career the plan targets: the caller's selection when it
// is one of the recommended careers, else the top career, else the first
// recommendation, else "Data Analyst".
func EffectiveCareer(rec Recommendation, selected string) string {
	careers := rec.Careers()
	if selected != "" {
		for _, c := range careers {
			if c == selected {
				return selected
			}
		}
	}
	if rec.TopCareer != "" {
		return rec.TopCareer
	}
	if len(careers) > 0 {
		return careers[0]
	}
	return fallbackCareer
}

// IsUpstream reports whether err came from the generation service.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
