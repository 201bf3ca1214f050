package service

import (
	"testing"
	"time"

	"offboard-checklist/internal/models"
)

func TestDeriveStatus(t *testing.T) {
	const (
		ns = models.StatusNotStarted
		ip = models.StatusInProgress
		d  = models.StatusDone
	)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		in       []models.Status
		want     models.Status
		wantDone bool
	}{
		{"empty", nil, ns, false},
		{"all not started", []models.Status{ns, ns, ns}, ns, false},
		{"one in progress", []models.Status{ns, ip, ns}, ip, false},
		{"one done", []models.Status{d, ns}, ip, false},
		{"done and in progress", []models.Status{d, ip, d}, ip, false},
		{"single done", []models.Status{d}, d, true},
		{"all done", []models.Status{d, d, d}, d, true},
		{"unknown label counts as not started", []models.Status{"Chưa thực hiện", d}, ip, false},
	}
	for _, tc := range cases {
		got, at := DeriveStatus(tc.in, now)
		if got != tc.want {
			t.Fatalf("%s: status got=%q want=%q", tc.name, got, tc.want)
		}
		if tc.wantDone {
			if at == nil || !at.Equal(now) {
				t.Fatalf("%s: completed_at got=%v want=%v", tc.name, at, now)
			}
		} else if at != nil {
			t.Fatalf("%s: completed_at should be nil, got=%v", tc.name, at)
		}
	}
}

func TestDeriveStatusUsesGivenClock(t *testing.T) {
	in := []models.Status{models.StatusDone}
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	_, a := DeriveStatus(in, first)
	_, b := DeriveStatus(in, second)
	if !a.Equal(first) || !b.Equal(second) {
		t.Fatalf("completed_at should follow the clock: %v %v", a, b)
	}
}
