package entities

// XPPerLevel is the flat XP width of every level.
const XPPerLevel = 1000

// LevelForXP maps total XP to a level, starting at 1.
func LevelForXP(xp int) int {
	return max(1, xp/XPPerLevel+1)
}

// LevelProgress is the fraction of the current level already earned, in [0,1).
func LevelProgress(xp, level int) float64 {
	return float64(xp-(level-1)*XPPerLevel) / float64(XPPerLevel)
}

func XPInLevel(xp int) int {
	return xp - (LevelForXP(xp)-1)*XPPerLevel
}

func XPToNextLevel(xp int) int {
	return LevelForXP(xp)*XPPerLevel - xp
}

// LevelInfo is a read model for level widgets.
type LevelInfo struct {
	Level     int
	Progress  float64
	XPInLevel int
	XPToNext  int
	TotalXP   int
}

func NewLevelInfo(xp int) LevelInfo {
	level := LevelForXP(xp)
	return LevelInfo{
		Level:     level,
		Progress:  LevelProgress(xp, level),
		XPInLevel: XPInLevel(xp),
		XPToNext:  XPToNextLevel(xp),
		TotalXP:   xp,
	}
}
