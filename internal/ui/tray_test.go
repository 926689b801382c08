package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cornerpeek/internal/journal"
)

func TestSummaryLine(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := journal.Summary{
		Counts: map[string]int{"peeking": 1234, "hidden": 1300},
		Total:  2534,
		Last:   now.Add(-2 * time.Minute),
	}
	assert.Equal(t, "Peeks: 1,234 · last 2 minutes ago", SummaryLine(s, now))

	assert.Equal(t, "Peeks: 0", SummaryLine(journal.Summary{Counts: map[string]int{}}, now))
}
