package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"pdf-text-pipeline/internal/domain"

	"golang.org/x/time/rate"
)

type testLogger struct{}

func (l *testLogger) Info(msg string, fields ...interface{})             {}
func (l *testLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *testLogger) Debug(msg string, fields ...interface{})            {}
func (l *testLogger) Warn(msg string, fields ...interface{})             {}

func newTestClient(searchURL, sparqlURL string) *WikidataClient {
	return &WikidataClient{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		searchURL:  searchURL,
		sparqlURL:  sparqlURL,
		userAgent:  "pdf-text-pipeline-test/1.0",
		limiter:    rate.NewLimiter(rate.Inf, 1),
		logger:     &testLogger{},
	}
}

func TestSearchEntities(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		if ua := r.Header.Get("User-Agent"); ua != "pdf-text-pipeline-test/1.0" {
			t.Errorf("missing identifying User-Agent, got %q", ua)
		}
		fmt.Fprint(w, `{"search":[{"id":"Q2","label":"Niels Bohr"},{"id":"Q3","label":"Bohr model"}]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)
	got, err := client.SearchEntities(context.Background(), "Niels Bohr", "en", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.SearchCandidate{
		{QID: "Q2", Label: "Niels Bohr"},
		{QID: "Q3", Label: "Bohr model"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SearchEntities() = %v, want %v", got, want)
	}
	if gotQuery != "Niels Bohr" {
		t.Fatalf("unexpected search param: %q", gotQuery)
	}
}

func TestSearchEntitiesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)
	if _, err := client.SearchEntities(context.Background(), "x", "en", 5); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func sparqlResult(vars map[string]string) map[string]interface{} {
	binding := map[string]interface{}{}
	for k, v := range vars {
		binding[k] = map[string]string{"value": v}
	}
	return map[string]interface{}{
		"results": map[string]interface{}{
			"bindings": []interface{}{binding},
		},
	}
}

func TestEnrichCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := sparqlResult(map[string]string{
			"item":      "http://www.wikidata.org/entity/Q2",
			"itemLabel": "Niels Bohr",
			"isHuman":   "true",
			"hasDob":    "true",
			"isDanish":  "true",
			"sitelinks": "150",
			"dob":       "1885-10-07T00:00:00Z",
		})
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)
	got, err := client.EnrichCandidates(context.Background(), []string{"Q2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.CandidateFeatures{{
		QID:       "Q2",
		Label:     "Niels Bohr",
		IsHuman:   true,
		HasDob:    true,
		IsDanish:  true,
		Sitelinks: 150,
		Dob:       "1885-10-07",
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("EnrichCandidates() = %+v, want %+v", got, want)
	}
}

func TestEnrichCandidatesEmptyInput(t *testing.T) {
	client := newTestClient("http://invalid.test", "http://invalid.test")
	got, err := client.EnrichCandidates(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestStudentsDedupPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":{"bindings":[
			{"student":{"value":"http://www.wikidata.org/entity/Q40904"},"studentLabel":{"value":"Werner Heisenberg"}},
			{"student":{"value":"http://www.wikidata.org/entity/Q57246"},"studentLabel":{"value":"Aage Bohr"}},
			{"student":{"value":"http://www.wikidata.org/entity/Q40904"},"studentLabel":{"value":"Werner Heisenberg"}}
		]}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)
	got, err := client.Students(context.Background(), "Q2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.LinkedItem{
		{Label: "Werner Heisenberg", QID: "Q40904"},
		{Label: "Aage Bohr", QID: "Q57246"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Students() = %v, want %v", got, want)
	}
}

func TestPoliticalPartiesSorted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":{"bindings":[
			{"party":{"value":"http://www.wikidata.org/entity/Q9"},"partyLabel":{"value":"Venstre"}},
			{"party":{"value":"http://www.wikidata.org/entity/Q8"},"partyLabel":{"value":"Socialdemokratiet"}}
		]}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)
	got, err := client.PoliticalParties(context.Background(), "Q42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.LinkedItem{
		{Label: "Socialdemokratiet", QID: "Q8"},
		{Label: "Venstre", QID: "Q9"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PoliticalParties() = %v, want %v", got, want)
	}
}

func TestBirthdaysSkipsMalformedDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":{"bindings":[
			{"dob":{"value":"1885-10-07T00:00:00Z"}},
			{"dob":{"value":"unknown"}}
		]}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)
	got, err := client.Birthdays(context.Background(), "Q2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"1885-10-07"}) {
		t.Fatalf("Birthdays() = %v", got)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1885-10-07T00:00:00Z", "1885-10-07"},
		{"1885-10-07", "1885-10-07"},
		{"1885-10-07+02:00", "1885-10-07"},
		{"-0500-01-01T00:00:00Z", "-0500-01-01"},
		{"-0500-01-01", "-0500-01-01"},
		{"1885", ""},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDate(tt.input); got != tt.want {
			t.Fatalf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestQIDFromURI(t *testing.T) {
	if got := qidFromURI("http://www.wikidata.org/entity/Q123"); got != "Q123" {
		t.Fatalf("qidFromURI() = %q", got)
	}
	if got := qidFromURI("Q123"); got != "Q123" {
		t.Fatalf("qidFromURI() = %q", got)
	}
}
