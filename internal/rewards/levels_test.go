package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp    int
		want  int
		title string
	}{
		{0, 1, "Rookie"},
		{199, 1, "Rookie"},
		{200, 2, "Apprentice"},
		{500, 3, "Helper"},
		{999, 3, "Helper"},
		{1000, 4, "Star"},
		{7400, 9, "Titan"},
		{10000, 10, "Ultimate"},
		{99999, 10, "Ultimate"},
	}
	for _, tt := range tests {
		got := LevelForXP(tt.xp)
		assert.Equal(t, tt.want, got.Number, "xp=%d", tt.xp)
		assert.Equal(t, tt.title, got.Title, "xp=%d", tt.xp)
	}
}

func TestProgress(t *testing.T) {
	info := Progress(350)
	assert.Equal(t, 2, info.Level.Number)
	assert.Equal(t, 500, info.NextLevelXP)
	assert.Equal(t, 150, info.XPIntoLevel)
	assert.Equal(t, 300, info.XPNeeded)
	assert.Equal(t, 50.0, info.ProgressPct)

	top := Progress(12000)
	assert.Equal(t, MaxLevel, top.Level.Number)
	assert.Zero(t, top.NextLevelXP)
	assert.Equal(t, 100.0, top.ProgressPct)
}

func TestGemIcons(t *testing.T) {
	seen := make(map[string]bool)
	for _, g := range AllGemTypes() {
		icon := g.Icon()
		assert.NotEqual(t, "✦", icon, "gem %s has no icon", g)
		assert.False(t, seen[icon], "duplicate icon for %s", g)
		seen[icon] = true
	}
}
