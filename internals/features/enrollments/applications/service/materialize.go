// file: internals/features/enrollments/applications/service/materialize.go
package service

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	courseModel "klubku_backend/internals/features/activities/courses/model"
	appModel "klubku_backend/internals/features/enrollments/applications/model"
)

var (
	ErrNoEligibleSessions = errors.New("tidak ada sesi yang bisa di-enroll untuk application ini")
	ErrUnknownSessionID   = errors.New("session_id yang diminta tidak ditemukan di course ini")
)

// PickCourseSessions memilih sesi yang di-cover satu application course saat
// approve:
//   - recurring: seluruh sesi course (jadwal mingguan penuh);
//   - non-recurring tanpa requested: mulai sesi pertama yang belum dimulai
//     pada saat apply, sebanyak minConsecutive sesi berurutan;
//   - non-recurring dengan requested: sesi yang diminta subject, dipangkas ke
//     minConsecutive sesi paling awal.
func PickCourseSessions(
	sessions []courseModel.CourseSessionModel,
	appliedAt time.Time,
	minConsecutive int,
	isRecurring bool,
	requested []uuid.UUID,
) ([]courseModel.CourseSessionModel, error) {
	if minConsecutive < 1 {
		minConsecutive = 1
	}

	sorted := make([]courseModel.CourseSessionModel, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CourseSessionStartTime.Before(sorted[j].CourseSessionStartTime)
	})

	if isRecurring {
		if len(sorted) == 0 {
			return nil, ErrNoEligibleSessions
		}
		return sorted, nil
	}

	if len(requested) > 0 {
		want := make(map[uuid.UUID]bool, len(requested))
		for _, id := range requested {
			want[id] = true
		}
		picked := make([]courseModel.CourseSessionModel, 0, len(requested))
		for _, s := range sorted {
			if want[s.CourseSessionID] {
				picked = append(picked, s)
				delete(want, s.CourseSessionID)
			}
		}
		if len(want) > 0 {
			return nil, ErrUnknownSessionID
		}
		if len(picked) == 0 {
			return nil, ErrNoEligibleSessions
		}
		if len(picked) > minConsecutive {
			picked = picked[:minConsecutive]
		}
		return picked, nil
	}

	// sesi pertama yang belum dimulai saat apply
	start := -1
	for i, s := range sorted {
		if !s.CourseSessionStartTime.Before(appliedAt) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrNoEligibleSessions
	}
	end := start + minConsecutive
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], nil
}

// BuildSessionEnrollments membentuk row enrollment dari sesi terpilih.
// Snapshot jadwal ikut disimpan supaya riwayat tetap utuh kalau sesi digeser.
func BuildSessionEnrollments(app *appModel.ApplicationModel, picked []courseModel.CourseSessionModel) []appModel.SessionEnrollmentModel {
	out := make([]appModel.SessionEnrollmentModel, 0, len(picked))
	for _, s := range picked {
		out = append(out, appModel.SessionEnrollmentModel{
			SessionEnrollmentClubID:        app.ApplicationClubID,
			SessionEnrollmentApplicationID: app.ApplicationID,
			SessionEnrollmentSubjectID:     app.ApplicationSubjectID,
			SessionEnrollmentTargetID:      app.ApplicationTargetID,
			SessionEnrollmentSessionID:     s.CourseSessionID,
			SessionEnrollmentFromTime:      s.CourseSessionStartTime,
			SessionEnrollmentToTime:        s.CourseSessionEndTime,
			SessionEnrollmentStatus:        appModel.SessionEnrollmentActive,
		})
	}
	return out
}
