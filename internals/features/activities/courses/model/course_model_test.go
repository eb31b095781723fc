package model

import "testing"

func TestHasApproveCapacity(t *testing.T) {
	cases := []struct {
		name     string
		capacity int
		approved int
		want     bool
	}{
		{"masih ada slot", 10, 9, true},
		{"tepat penuh", 10, 10, false},
		{"lewat penuh", 10, 11, false},
		{"kapasitas 0 = tanpa batas", 0, 500, true},
		{"kapasitas 1 kosong", 1, 0, true},
	}
	for _, tc := range cases {
		m := &CourseModel{CourseCapacity: tc.capacity, CourseApprovedCount: tc.approved}
		if got := m.HasApproveCapacity(); got != tc.want {
			t.Errorf("%s: HasApproveCapacity() = %v, mau %v", tc.name, got, tc.want)
		}
	}
}

func TestSessionHasSeat(t *testing.T) {
	cases := []struct {
		name     string
		capacity int
		enrolled int
		want     bool
	}{
		{"masih ada kursi", 8, 7, true},
		{"penuh", 8, 8, false},
		{"kapasitas 0 = tanpa batas", 0, 100, true},
	}
	for _, tc := range cases {
		s := &CourseSessionModel{CourseSessionCapacity: tc.capacity, CourseSessionEnrolledCount: tc.enrolled}
		if got := s.HasSeat(); got != tc.want {
			t.Errorf("%s: HasSeat() = %v, mau %v", tc.name, got, tc.want)
		}
	}
}
