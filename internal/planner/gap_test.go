package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicGap(t *testing.T) {
	cases := []struct {
		name     string
		required []string
		known    []string
		want     []string
	}{
		{"keeps order", []string{"Python", "SQL", "Excel"}, []string{"SQL"}, []string{"Python", "Excel"}},
		{"all known", []string{"Python", "SQL"}, []string{"SQL", "Python", "Go"}, []string{}},
		{"case sensitive", []string{"python", "SQL"}, []string{"Python"}, []string{"python", "SQL"}},
		{"duplicates kept", []string{"SQL", "Go", "SQL"}, nil, []string{"SQL", "Go", "SQL"}},
		{"empty required", nil, []string{"SQL"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TopicGap(tc.required, tc.known)
			assert.Equal(t, tc.want, got)
		})
	}
}
