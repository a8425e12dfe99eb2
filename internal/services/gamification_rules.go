package services

import (
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	types "github.com/yungbote/thorbis-backend/internal/domain"
)

// GamificationRules holds the XP multipliers.
type GamificationRules struct {
	LessonXPPerMinute  float64 `yaml:"lesson_xp_per_minute" validate:"gt=0"`
	CourseXPPerHour    float64 `yaml:"course_xp_per_hour" validate:"gt=0"`
	DefaultCourseHours float64 `yaml:"default_course_hours" validate:"gt=0"`
}

func DefaultGamificationRules() GamificationRules {
	return GamificationRules{
		LessonXPPerMinute:  2,
		CourseXPPerHour:    50,
		DefaultCourseHours: 1,
	}
}

// LoadGamificationRules reads overrides from a YAML file on top of the
// defaults. An empty path returns the defaults.
func LoadGamificationRules(path string) (GamificationRules, error) {
	rules := DefaultGamificationRules()
	if path == "" {
		return rules, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read gamification rules: %w", err)
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return rules, fmt.Errorf("parse gamification rules: %w", err)
	}
	if err := validator.New().Struct(rules); err != nil {
		return rules, fmt.Errorf("invalid gamification rules: %w", err)
	}
	return rules, nil
}

func (r GamificationRules) LessonXP(lesson *types.Lesson) int {
	if lesson == nil {
		return 0
	}
	return int(math.Round(float64(lesson.DurationMinutes) * r.LessonXPPerMinute))
}

// CourseXP treats a missing or zero estimate as DefaultCourseHours.
func (r GamificationRules) CourseXP(course *types.Course) int {
	if course == nil {
		return 0
	}
	hours := r.DefaultCourseHours
	if course.EstimatedHours != nil && *course.EstimatedHours != 0 {
		hours = *course.EstimatedHours
	}
	return int(math.Round(hours * r.CourseXPPerHour))
}
