package models

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to EventStatus
	}{
		{StatusDraft, StatusPendingReview},
		{StatusPendingReview, StatusPublished},
		{StatusPendingReview, StatusRejected},
		{StatusPublished, StatusCancelled},
	}

	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("transition %s -> %s should be allowed", tc.from, tc.to)
		}
	}

	// rejected and cancelled are terminal, and nothing goes backwards.
	statuses := []EventStatus{StatusDraft, StatusPendingReview, StatusPublished, StatusRejected, StatusCancelled}
	allowedSet := make(map[[2]EventStatus]bool)
	for _, tc := range allowed {
		allowedSet[[2]EventStatus{tc.from, tc.to}] = true
	}

	for _, from := range statuses {
		for _, to := range statuses {
			if allowedSet[[2]EventStatus{from, to}] {
				continue
			}
			if CanTransition(from, to) {
				t.Errorf("transition %s -> %s should be forbidden", from, to)
			}
		}
	}
}

func TestEventUpdateFieldsSkipsUnsetValues(t *testing.T) {
	title := "Novo título"
	capacity := 80
	update := EventUpdate{
		Title:    &title,
		Capacity: &capacity,
	}

	fields := update.Fields()

	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2: %v", len(fields), fields)
	}
	if fields["title"] != title {
		t.Errorf("title field = %v, want %q", fields["title"], title)
	}
	if fields["capacity"] != capacity {
		t.Errorf("capacity field = %v, want %d", fields["capacity"], capacity)
	}
	if _, ok := fields["location"]; ok {
		t.Errorf("location was not sent but appears in fields")
	}
}

func TestEventUpdateFieldsIncludesDate(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	update := EventUpdate{Date: &date}

	fields := update.Fields()
	if got, ok := fields["date"].(time.Time); !ok || !got.Equal(date) {
		t.Errorf("date field = %v, want %v", fields["date"], date)
	}
}
