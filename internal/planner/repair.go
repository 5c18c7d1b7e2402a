package planner

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RepairBranch identifies which tier of Repair produced a record.
type RepairBranch int

const (
	// BranchStrict means the whole text parsed as a recommendation object.
	BranchStrict RepairBranch = iota + 1
	// BranchSubstring means the outermost {...} span parsed as a recommendation object.
	BranchSubstring
	// BranchDefault means nothing parsed and DefaultRecommendation was substituted.
	BranchDefault
)

func (b RepairBranch) String() string {
	switch b {
	case BranchStrict:
		return "strict"
	case BranchSubstring:
		return "substring"
	case BranchDefault:
		return "default"
	default:
		return "unknown"
	}
}

// DefaultRecommendation is substituted when the generation output cannot be parsed at all.
// Use defaultRecommendation() to get a copy that is safe to mutate.
var DefaultRecommendation = Recommendation{
	Recommendations: []CareerOption{
		{Career: "Data Analyst", Reason: "Analytical skills"},
		{Career: "Software Engineer", Reason: "Likes coding"},
		{Career: "Product Designer", Reason: "Creative interests"},
	},
	TopCareer: "Data Analyst",
	Topics:    []string{"Python", "SQL", "Excel", "Statistics", "Data Visualization"},
}

func defaultRecommendation() Recommendation {
	return Recommendation{
		Recommendations: append([]CareerOption(nil), DefaultRecommendation.Recommendations...),
		TopCareer:       DefaultRecommendation.TopCareer,
		Topics:          append([]string(nil), DefaultRecommendation.Topics...),
	}
}

var recommendationFields = []string{"recommendations", "top_career", "topics"}

// Repair turns untrusted generation output into a Recommendation. It never fails:
// the strict parse is tried first, then the span from the first '{' to the last '}',
// and finally DefaultRecommendation is returned.
func Repair(raw string) (Recommendation, RepairBranch) {
	if rec, ok := parseRecommendation([]byte(raw)); ok {
		return rec, BranchStrict
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		if rec, ok := parseRecommendation([]byte(raw[start : end+1])); ok {
			return rec, BranchSubstring
		}
	}
	return defaultRecommendation(), BranchDefault
}

// parseRecommendation accepts a JSON object carrying at least one recommendation field.
// Keys match exactly; fields that are present must have the documented types.
func parseRecommendation(data []byte) (Recommendation, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return Recommendation{}, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Recommendation{}, false
	}
	known := false
	for _, name := range recommendationFields {
		if _, ok := fields[name]; ok {
			known = true
			break
		}
	}
	if !known {
		return Recommendation{}, false
	}

	var rec Recommendation
	var items []map[string]json.RawMessage
	if err := decodeField(fields, "recommendations", &items); err != nil {
		return Recommendation{}, false
	}
	for _, item := range items {
		var opt CareerOption
		if decodeField(item, "career", &opt.Career) != nil || decodeField(item, "reason", &opt.Reason) != nil {
			return Recommendation{}, false
		}
		rec.Recommendations = append(rec.Recommendations, opt)
	}
	if decodeField(fields, "top_career", &rec.TopCareer) != nil || decodeField(fields, "topics", &rec.Topics) != nil {
		return Recommendation{}, false
	}
	return rec.normalized(), true
}

// decodeField unmarshals fields[name] into dst; an absent key leaves dst untouched.
func decodeField(fields map[string]json.RawMessage, name string, dst any) error {
	raw, ok := fields[name]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
