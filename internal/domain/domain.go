package domain

import (
	"github.com/yungbote/thorbis-backend/internal/domain/gamification"
	"github.com/yungbote/thorbis-backend/internal/domain/learning"
)

const (
	ProgressNotStarted = learning.ProgressNotStarted
	ProgressInProgress = learning.ProgressInProgress
	ProgressCompleted  = learning.ProgressCompleted

	XPSourceLessonCompletion = gamification.XPSourceLessonCompletion
	XPSourceCourseCompletion = gamification.XPSourceCourseCompletion
)

type Course = learning.Course
type Lesson = learning.Lesson
type Enrollment = learning.Enrollment
type LessonProgress = learning.LessonProgress
type ProgressState = learning.ProgressState

type XPTransaction = gamification.XPTransaction
type XPSourceType = gamification.XPSourceType
type UserXP = gamification.UserXP
