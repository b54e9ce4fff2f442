package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	all := []Status{StatusPending, StatusScraping, StatusGenerating, StatusCompleted, StatusFailed}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusScraping}:     true,
		{StatusScraping, StatusGenerating}:  true,
		{StatusScraping, StatusFailed}:      true,
		{StatusGenerating, StatusCompleted}: true,
		{StatusGenerating, StatusFailed}:    true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]Status{from, to}], from.CanTransition(to), "%s → %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusScraping.Terminal())
	assert.False(t, StatusGenerating.Terminal())
}
