package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	courseModel "klubku_backend/internals/features/activities/courses/model"
	appModel "klubku_backend/internals/features/enrollments/applications/model"
)

func makeSessions(base time.Time, n int) []courseModel.CourseSessionModel {
	out := make([]courseModel.CourseSessionModel, 0, n)
	for i := 0; i < n; i++ {
		start := base.Add(time.Duration(i) * 7 * 24 * time.Hour)
		out = append(out, courseModel.CourseSessionModel{
			CourseSessionID:        uuid.New(),
			CourseSessionStartTime: start,
			CourseSessionEndTime:   start.Add(2 * time.Hour),
		})
	}
	return out
}

func TestPickCourseSessionsConsecutive(t *testing.T) {
	base := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	sessions := makeSessions(base, 6)

	// apply di antara sesi ke-2 dan ke-3 → mulai dari sesi ke-3, ambil 2
	appliedAt := base.Add(10 * 24 * time.Hour)
	picked, err := PickCourseSessions(sessions, appliedAt, 2, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(picked) != 2 {
		t.Fatalf("terpilih %d sesi, mau 2", len(picked))
	}
	if picked[0].CourseSessionID != sessions[2].CourseSessionID {
		t.Fatal("tidak mulai dari sesi pertama yang belum lewat")
	}
	if picked[1].CourseSessionID != sessions[3].CourseSessionID {
		t.Fatal("sesi tidak berurutan")
	}
}

func TestPickCourseSessionsTailShorterThanMin(t *testing.T) {
	base := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	sessions := makeSessions(base, 3)

	// tersisa satu sesi terakhir saja
	appliedAt := sessions[2].CourseSessionStartTime.Add(-time.Hour)
	picked, err := PickCourseSessions(sessions, appliedAt, 4, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(picked) != 1 {
		t.Fatalf("terpilih %d sesi, mau 1", len(picked))
	}

	// semua sesi sudah lewat
	if _, err := PickCourseSessions(sessions, base.Add(100*24*time.Hour), 1, false, nil); err != ErrNoEligibleSessions {
		t.Fatalf("err = %v, mau ErrNoEligibleSessions", err)
	}
}

func TestPickCourseSessionsRecurringTakesAll(t *testing.T) {
	base := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	sessions := makeSessions(base, 5)

	picked, err := PickCourseSessions(sessions, base.Add(20*24*time.Hour), 1, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(picked) != 5 {
		t.Fatalf("recurring harus cover semua sesi, dapat %d", len(picked))
	}
}

func TestPickCourseSessionsRequested(t *testing.T) {
	base := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	sessions := makeSessions(base, 5)

	req := []uuid.UUID{sessions[4].CourseSessionID, sessions[1].CourseSessionID, sessions[3].CourseSessionID}
	picked, err := PickCourseSessions(sessions, base, 2, false, req)
	if err != nil {
		t.Fatal(err)
	}
	// dipangkas ke 2 paling awal dari yang diminta
	if len(picked) != 2 {
		t.Fatalf("terpilih %d sesi, mau 2", len(picked))
	}
	if picked[0].CourseSessionID != sessions[1].CourseSessionID || picked[1].CourseSessionID != sessions[3].CourseSessionID {
		t.Fatal("urutan pilihan salah")
	}

	// id asing ditolak
	if _, err := PickCourseSessions(sessions, base, 2, false, []uuid.UUID{uuid.New()}); err != ErrUnknownSessionID {
		t.Fatalf("err = %v, mau ErrUnknownSessionID", err)
	}
}

func TestBuildSessionEnrollments(t *testing.T) {
	base := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	sessions := makeSessions(base, 2)
	app := &appModel.ApplicationModel{
		ApplicationID:        uuid.New(),
		ApplicationClubID:    uuid.New(),
		ApplicationSubjectID: uuid.New(),
		ApplicationTargetID:  uuid.New(),
	}

	rows := BuildSessionEnrollments(app, sessions)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	for i, r := range rows {
		if r.SessionEnrollmentApplicationID != app.ApplicationID {
			t.Fatal("application_id tidak ikut")
		}
		if r.SessionEnrollmentSessionID != sessions[i].CourseSessionID {
			t.Fatal("session_id tidak cocok")
		}
		if r.SessionEnrollmentFromTime != sessions[i].CourseSessionStartTime {
			t.Fatal("snapshot from_time salah")
		}
		if r.SessionEnrollmentStatus != appModel.SessionEnrollmentActive {
			t.Fatal("status awal harus active")
		}
	}
}
