// file: internals/features/activities/courses/model/course_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CourseModel struct {
	CourseID      uuid.UUID  `gorm:"column:course_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_id"`
	CourseClubID  uuid.UUID  `gorm:"column:course_club_id;type:uuid;not null;index:idx_courses_club_id" json:"course_club_id"`
	CourseTitle   string     `gorm:"column:course_title;type:varchar(255);not null" json:"course_title"`
	CourseSlug    string     `gorm:"column:course_slug;type:varchar(100);not null" json:"course_slug"`
	CourseCoachID *uuid.UUID `gorm:"column:course_coach_id;type:uuid" json:"course_coach_id,omitempty"`

	// kapasitas approved application; dicek transaksional saat approve
	CourseCapacity      int `gorm:"column:course_capacity;not null;default:0" json:"course_capacity"`
	CourseApprovedCount int `gorm:"column:course_approved_count;not null;default:0;check:course_approved_count >= 0" json:"course_approved_count"`

	// jumlah sesi berurutan yang diambil satu application saat approve
	CourseMinConsecutiveSessions int `gorm:"column:course_min_consecutive_sessions;not null;default:1" json:"course_min_consecutive_sessions"`

	// recurring: enrollment meng-cover seluruh sesi, bukan potongan berurutan
	CourseIsRecurring       bool          `gorm:"column:course_is_recurring;not null;default:false" json:"course_is_recurring"`
	CourseRecurringWeekdays pq.Int64Array `gorm:"column:course_recurring_weekdays;type:int[]" json:"course_recurring_weekdays,omitempty"`

	// course offline/non-recurring boleh didaftarkan langsung oleh staff (skip pending)
	CourseAllowsDirectEnroll bool `gorm:"column:course_allows_direct_enroll;not null;default:false" json:"course_allows_direct_enroll"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;type:timestamptz;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;type:timestamptz;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;type:timestamptz;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string { return "courses" }

// HasApproveCapacity: masih ada slot approved? Kapasitas 0 = tanpa batas.
// Dipanggil terhadap row yang sudah terkunci FOR UPDATE supaya counter live.
func (m *CourseModel) HasApproveCapacity() bool {
	return m.CourseCapacity <= 0 || m.CourseApprovedCount < m.CourseCapacity
}

type CourseSessionModel struct {
	CourseSessionID       uuid.UUID `gorm:"column:course_session_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_session_id"`
	CourseSessionCourseID uuid.UUID `gorm:"column:course_session_course_id;type:uuid;not null;index:idx_course_sessions_course" json:"course_session_course_id"`
	CourseSessionClubID   uuid.UUID `gorm:"column:course_session_club_id;type:uuid;not null" json:"course_session_club_id"`
	CourseSessionTitle    string    `gorm:"column:course_session_title;type:varchar(255)" json:"course_session_title"`

	CourseSessionStartTime time.Time `gorm:"column:course_session_start_time;not null" json:"course_session_start_time"`
	CourseSessionEndTime   time.Time `gorm:"column:course_session_end_time;not null" json:"course_session_end_time"`
	CourseSessionLocation  string    `gorm:"column:course_session_location;type:varchar(255)" json:"course_session_location"`

	// counter peserta aktif di sesi ini (untuk kapasitas make-up)
	CourseSessionEnrolledCount int `gorm:"column:course_session_enrolled_count;not null;default:0" json:"course_session_enrolled_count"`
	CourseSessionCapacity      int `gorm:"column:course_session_capacity;not null;default:0" json:"course_session_capacity"`

	CourseSessionCreatedAt time.Time      `gorm:"column:course_session_created_at;type:timestamptz;autoCreateTime" json:"course_session_created_at"`
	CourseSessionUpdatedAt time.Time      `gorm:"column:course_session_updated_at;type:timestamptz;autoUpdateTime" json:"course_session_updated_at"`
	CourseSessionDeletedAt gorm.DeletedAt `gorm:"column:course_session_deleted_at;type:timestamptz;index" json:"course_session_deleted_at,omitempty"`
}

func (CourseSessionModel) TableName() string { return "course_sessions" }

// HasSeat: masih ada kursi di sesi ini (untuk make-up). Kapasitas 0 = tanpa batas.
func (s *CourseSessionModel) HasSeat() bool {
	return s.CourseSessionCapacity <= 0 || s.CourseSessionEnrolledCount < s.CourseSessionCapacity
}
