package planner

import (
	"fmt"
	"strings"
)

// StarterGuide renders the short narrative shown with a plan.
func StarterGuide(topCareer string, missing []string) string {
	if len(missing) == 0 {
		return fmt.Sprintf("You already know all core topics for %s. Focus on advanced projects, portfolio building, and real-world practice.", topCareer)
	}
	return fmt.Sprintf("Step-by-step guide to become a %s: Learn %s, practice projects, build portfolio, and develop skills over 6-12 months.",
		topCareer, strings.Join(missing, ", "))
}
