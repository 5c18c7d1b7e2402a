package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStarterGuide(t *testing.T) {
	assert.Equal(t,
		"Step-by-step guide to become a Data Analyst: Learn Python, SQL, practice projects, build portfolio, and develop skills over 6-12 months.",
		StarterGuide("Data Analyst", []string{"Python", "SQL"}))
	assert.Equal(t,
		"You already know all core topics for Data Analyst. Focus on advanced projects, portfolio building, and real-world practice.",
		StarterGuide("Data Analyst", nil))
}
