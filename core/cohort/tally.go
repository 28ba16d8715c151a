package cohort

// TallyLevels counts the students assessed into each level.
// A student assessed more than once is counted at their last assessment only.
// Levels are returned in order of first appearance.
func TallyLevels(assessments []Assessment) []LevelInput {
	latest := make(map[string]Level, len(assessments))
	for _, a := range assessments {
		latest[a.StudentID] = a.Level
	}

	counts := make(map[Level]int)
	order := make([]Level, 0)
	seen := make(map[string]bool, len(latest))
	for _, a := range assessments {
		if seen[a.StudentID] || latest[a.StudentID] != a.Level {
			continue
		}
		seen[a.StudentID] = true
		if _, ok := counts[a.Level]; !ok {
			order = append(order, a.Level)
		}
		counts[a.Level]++
	}

	levels := make([]LevelInput, 0, len(order))
	for _, lvl := range order {
		levels = append(levels, LevelInput{Level: lvl, Students: counts[lvl]})
	}
	return levels
}
