package mcq

import "sort"

// yearOffsets is the search order for synthetic nearby years when the
// dataset itself has too few distinct years.
var yearOffsets = []int{1, -1, 2, -2, 3, -3, 4, -4, 5, -5}

// yearDistractors picks plausible wrong years for a year question.
// Years observed in the dataset are preferred; candidates are ranked by
// closeness to the correct year with a small bonus for frequent years.
// Candidates are pre-sorted ascending so ranking ties break the same way
// on every run.
func yearDistractors(correctYear int, distribution map[int]int, count, minYear, maxYear int) []int {
	candidates := make([]int, 0, len(distribution))
	for year := range distribution {
		if year != correctYear {
			candidates = append(candidates, year)
		}
	}
	sort.Ints(candidates)

	if len(candidates) < count {
		present := make(map[int]bool, len(candidates)+1)
		present[correctYear] = true
		for _, year := range candidates {
			present[year] = true
		}
		for _, offset := range yearOffsets {
			if len(candidates) >= count {
				break
			}
			synthetic := correctYear + offset
			if present[synthetic] || synthetic < minYear || synthetic > maxYear {
				continue
			}
			present[synthetic] = true
			candidates = append(candidates, synthetic)
		}
	}

	score := func(year int) float64 {
		distance := year - correctYear
		if distance < 0 {
			distance = -distance
		}
		return -float64(distance) + float64(distribution[year])*0.1
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return score(candidates[i]) > score(candidates[j])
	})

	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates
}
