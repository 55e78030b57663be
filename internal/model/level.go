package model

import "math"

// LevelFor returns the level reached with the given amount of experience.
// Experience is expected to be non-negative.
func LevelFor(experience int) int {
	lvl := (math.Sqrt(2500+200*float64(experience)) - 50) / 100
	return int(lvl)
}

// UntilNextLevel returns how much experience is still missing to reach level+1.
// Call LevelFor on the same experience first; mismatched inputs can go negative.
func UntilNextLevel(level, experience int) int {
	return 50*(level+1)*(level+2) - experience
}
