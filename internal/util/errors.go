package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrBadgeNotFound      = errors.New("badge not found")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this skill")
	ErrNotEnrolled        = errors.New("not enrolled in this skill")
	ErrSkillWithoutCourse = errors.New("skill has no courses yet")
	ErrProgressTargetless = errors.New("lessonId, courseId or quizId required")
)
