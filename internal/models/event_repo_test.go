package models

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

// newRecordingRepo points a SupabaseRepo at a stub PostgREST server and
// exposes the query string of the last request it received, so tests can
// assert the filters ListEvents actually sends.
func newRecordingRepo(t *testing.T) (*SupabaseRepo, *url.Values) {
	t.Helper()

	var lastQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", "0-0/0")
		w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)

	client, err := supabase.NewClient(srv.URL, "test-anon-key", nil)
	if err != nil {
		t.Fatalf("Failed to build client: %v", err)
	}

	return SupabaseNewRepo(client, srv.URL, "test-anon-key"), &lastQuery
}

func TestListEventsAnonymousQueryRestrictsToPublished(t *testing.T) {
	repo, query := newRecordingRepo(t)

	if _, err := repo.ListEvents(context.Background(), EventFilters{}, ""); err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}

	if got := query.Get("status"); got != "eq.published" {
		t.Errorf("Expected status=eq.published, got %q", got)
	}
}

func TestListEventsAuthenticatedQuerySendsVisibilityClause(t *testing.T) {
	repo, query := newRecordingRepo(t)
	viewer := uuid.New()

	_, err := repo.ListEvents(context.Background(), EventFilters{ViewerID: &viewer}, "session-token")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}

	or := query.Get("or")
	if !strings.Contains(or, "status.eq.published") || !strings.Contains(or, "user_id.eq."+viewer.String()) {
		t.Errorf("Visibility clause missing from query, or=%q", or)
	}
}

// Searching must narrow the visible rows, never widen them: the search
// disjunction goes through and=() so it cannot replace the or=() visibility
// clause.
func TestListEventsSearchDoesNotReplaceVisibilityClause(t *testing.T) {
	repo, query := newRecordingRepo(t)
	viewer := uuid.New()

	filters := EventFilters{ViewerID: &viewer, SearchText: "retiro"}
	if _, err := repo.ListEvents(context.Background(), filters, "session-token"); err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}

	or := query.Get("or")
	if !strings.Contains(or, "status.eq.published") || !strings.Contains(or, "user_id.eq."+viewer.String()) {
		t.Fatalf("Visibility clause dropped when searching, or=%q", or)
	}

	and := query.Get("and")
	if !strings.Contains(and, "title.ilike.*retiro*") || !strings.Contains(and, "description.ilike.*retiro*") {
		t.Errorf("Search clause missing from query, and=%q", and)
	}
}

func TestListEventsAnonymousSearchKeepsPublishedFilter(t *testing.T) {
	repo, query := newRecordingRepo(t)

	filters := EventFilters{SearchText: "retiro"}
	if _, err := repo.ListEvents(context.Background(), filters, ""); err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}

	if got := query.Get("status"); got != "eq.published" {
		t.Errorf("Expected status=eq.published, got %q", got)
	}
	if and := query.Get("and"); !strings.Contains(and, "title.ilike.*retiro*") {
		t.Errorf("Search clause missing from query, and=%q", and)
	}
}

func TestListEventsAdminQueryIsUnrestricted(t *testing.T) {
	repo, query := newRecordingRepo(t)

	if _, err := repo.ListEvents(context.Background(), EventFilters{Admin: true}, "admin-token"); err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}

	if query.Get("status") != "" || query.Get("or") != "" {
		t.Errorf("Expected no row filters for the review queue, got status=%q or=%q",
			query.Get("status"), query.Get("or"))
	}
}

func TestListEventsSearchKeepsOrdinaryPunctuation(t *testing.T) {
	repo, query := newRecordingRepo(t)

	filters := EventFilters{SearchText: "Sto. Antônio"}
	if _, err := repo.ListEvents(context.Background(), filters, ""); err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}

	if and := query.Get("and"); !strings.Contains(and, "title.ilike.*Sto. Antônio*") {
		t.Errorf("Dot was mangled in search pattern, and=%q", and)
	}
}

func TestListEventsSearchStripsFilterDelimiters(t *testing.T) {
	repo, query := newRecordingRepo(t)

	filters := EventFilters{SearchText: "a,b(c)"}
	if _, err := repo.ListEvents(context.Background(), filters, ""); err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}

	and := query.Get("and")
	if strings.Contains(and, "a,b") || strings.Contains(and, "(c)") {
		t.Errorf("Delimiters leaked into the filter expression, and=%q", and)
	}
}
