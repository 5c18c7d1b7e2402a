package planner

// CareerOption is one suggested career with the reason it was suggested.
type CareerOption struct {
	Career string `json:"career"`
	Reason string `json:"reason"`
}

// Recommendation is the structured record derived from the generation service output.
type Recommendation struct {
	Recommendations []CareerOption `json:"recommendations"`
	TopCareer       string         `json:"top_career"`
	Topics          []string       `json:"topics"`
}

// Careers returns the career names in recommendation order.
func (r Recommendation) Careers() []string {
	out := make([]string, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		out = append(out, rec.Career)
	}
	return out
}

func (r Recommendation) normalized() Recommendation {
	if r.Recommendations == nil {
		r.Recommendations = []CareerOption{}
	}
	if r.Topics == nil {
		r.Topics = []string{}
	}
	return r
}

// Plan is the action plan computed for the effective career.
type Plan struct {
	SelectedCareer string         `json:"selected_career"`
	MissingTopics  []string       `json:"missing_topics"`
	DailySchedule  Allocation     `json:"daily_schedule"`
	WeeklySchedule WeeklySchedule `json:"weekly_schedule"`
	StarterGuide   string         `json:"starter_guide"`
}

// Result is what Generate hands back: the recommendation record alongside the plan.
type Result struct {
	Recommendation
	ActionPlan Plan `json:"action_plan"`

	// Branch records which repair tier produced the recommendation.
	Branch RepairBranch `json:"-"`
}
