package learning

import (
	"time"

	"gorm.io/gorm"

	courseModels "lms/models/course"
)

// EnrollmentStatus lifecycle: active -> completed (at 100%) or dropped.
// Completed is never downgraded automatically.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// Enrollment is one student's registration in one course.
// CompletionPercentage is recomputed from lesson progress rows, never
// incrementally patched.
type Enrollment struct {
	gorm.Model
	StudentID            uint             `json:"student_id" gorm:"index:idx_enrollment_student_course,unique;not null"`
	CourseID             uint             `json:"course_id" gorm:"index:idx_enrollment_student_course,unique;not null"`
	CompletionPercentage float64          `json:"completion_percentage" gorm:"default:0"`
	Status               EnrollmentStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	CompletedAt          *time.Time       `json:"completed_at"`
	CertificateIssued    bool             `json:"certificate_issued" gorm:"default:false"`

	Course         *courseModels.Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	LessonProgress []LessonProgress     `json:"lesson_progress,omitempty" gorm:"foreignKey:EnrollmentID"`
}

// ProgressStatus lifecycle for a single lesson within an enrollment.
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

func (s ProgressStatus) Valid() bool {
	switch s {
	case ProgressNotStarted, ProgressInProgress, ProgressCompleted:
		return true
	}
	return false
}

type LessonProgress struct {
	gorm.Model
	EnrollmentID  uint           `json:"enrollment_id" gorm:"index:idx_progress_enrollment_lesson,unique;not null"`
	LessonID      uint           `json:"lesson_id" gorm:"index:idx_progress_enrollment_lesson,unique;not null"`
	Status        ProgressStatus `json:"status" gorm:"type:varchar(20);default:'not_started'"`
	VideoProgress int            `json:"video_progress" gorm:"default:0"` // 0-100
	StartedAt     *time.Time     `json:"started_at"`
	CompletedAt   *time.Time     `json:"completed_at"`
}
