package services

import (
	"math"
	"time"
)

// IsNewlyCompleted reports a first crossing: the new percentage reached 100
// and no completion had been recorded before this write. Callers must pass
// the pre-write completion timestamp.
func IsNewlyCompleted(newPercentage float64, priorCompletedAt *time.Time) bool {
	return newPercentage >= 100 && priorCompletedAt == nil
}

func ClampPercentage(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// CoursePercentage is round(100 * completed / total), or 0 for an empty course.
func CoursePercentage(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(completed) / float64(total)))
	if pct > 100 {
		return 100
	}
	return pct
}
