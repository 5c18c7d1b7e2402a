package llm

import (
	_ "embed"
	"fmt"
	"strings"
)

// CareerSystemPrompt is sent as the system message for recommendation requests.
const CareerSystemPrompt = "You are a helpful AI career guidance assistant."

//go:embed prompts/career_v1.txt
var careerPromptV1 string

// CareerPrompt embeds the student's answers into the recommendation prompt.
func CareerPrompt(answers []string) string {
	var b strings.Builder
	for i, a := range answers {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, strings.TrimSpace(a))
	}
	return strings.ReplaceAll(careerPromptV1, "{{ANSWERS}}", b.String())
}
