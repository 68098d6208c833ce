package service

import (
	"sort"
	"strconv"

	"github.com/fittrack/exercise-tracker/internal/core/domain"
)

// filterLog applies the inclusive date window, sorts the matches ascending by
// date (ties keep append order), and truncates to the earliest limit entries
// when limit > 0. The second return value is the match count before limiting.
func filterLog(log []domain.Exercise, window domain.DateRange, limit int) ([]domain.Exercise, int) {
	matched := make([]domain.Exercise, 0, len(log))
	for _, ex := range log {
		if window.Contains(ex.Date) {
			matched = append(matched, ex)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	total := len(matched)
	if limit > 0 && limit < total {
		matched = matched[:limit]
	}
	return matched, total
}

// parseLimit parses the raw limit parameter. Anything that is not a positive
// integer means "no limit" and is reported as 0, never as an error.
func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
