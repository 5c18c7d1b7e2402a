package planner

// TopicGap returns the topics in required that are not in known, in required order.
// Matching is exact and case-sensitive; duplicates in required are kept.
func TopicGap(required, known []string) []string {
	have := make(map[string]struct{}, len(known))
	for _, t := range known {
		have[t] = struct{}{}
	}
	missing := make([]string, 0, len(required))
	for _, t := range required {
		if _, ok := have[t]; ok {
			continue
		}
		missing = append(missing, t)
	}
	return missing
}
