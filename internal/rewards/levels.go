package rewards

import "math"

// Level is one rung of the experience ladder.
type Level struct {
	Number int
	MinXP  int
	Title  string
}

var levels = []Level{
	{1, 0, "Rookie"},
	{2, 200, "Apprentice"},
	{3, 500, "Helper"},
	{4, 1000, "Star"},
	{5, 1700, "Champion"},
	{6, 2600, "Hero"},
	{7, 3800, "Legend"},
	{8, 5400, "Master"},
	{9, 7400, "Titan"},
	{10, 10000, "Ultimate"},
}

// MaxLevel is the top of the ladder.
var MaxLevel = levels[len(levels)-1].Number

// LevelForXP returns the highest level whose threshold xp has reached.
func LevelForXP(xp int) Level {
	lvl := levels[0]
	for _, l := range levels {
		if xp < l.MinXP {
			break
		}
		lvl = l
	}
	return lvl
}

// LevelInfo describes progress toward the next level.
type LevelInfo struct {
	Level       Level
	XP          int
	XPIntoLevel int
	XPNeeded    int
	// NextLevelXP is zero at MaxLevel.
	NextLevelXP int
	ProgressPct float64
}

// Progress reports where xp sits between its level and the next.
func Progress(xp int) LevelInfo {
	cur := LevelForXP(xp)
	info := LevelInfo{Level: cur, XP: xp, ProgressPct: 100}
	if cur.Number >= MaxLevel {
		return info
	}

	next := levels[cur.Number] // levels are 1-indexed by Number
	info.NextLevelXP = next.MinXP
	info.XPIntoLevel = xp - cur.MinXP
	info.XPNeeded = next.MinXP - cur.MinXP
	if info.XPNeeded > 0 {
		pct := float64(info.XPIntoLevel) / float64(info.XPNeeded) * 100
		info.ProgressPct = math.Round(pct*10) / 10
	}
	return info
}
