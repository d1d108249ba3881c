package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"pdf-text-pipeline/internal/domain"
	apperrors "pdf-text-pipeline/pkg/errors"
)

// mockWikidataRepository serves canned data keyed by QID.
type mockWikidataRepository struct {
	searchResults map[string][]domain.SearchCandidate // keyed by language
	searchErrs    map[string]error                    // keyed by language
	enriched      []domain.CandidateFeatures
	enrichErr     error
	birthdays     map[string][]string
	students      map[string][]domain.LinkedItem
	parties       map[string][]domain.LinkedItem
	supervisors   map[string][]domain.LinkedItem

	searchedLangs []string
}

func (m *mockWikidataRepository) SearchEntities(ctx context.Context, name, language string, limit int) ([]domain.SearchCandidate, error) {
	m.searchedLangs = append(m.searchedLangs, language)
	if err := m.searchErrs[language]; err != nil {
		return nil, err
	}
	return m.searchResults[language], nil
}

func (m *mockWikidataRepository) EnrichCandidates(ctx context.Context, qids []string) ([]domain.CandidateFeatures, error) {
	if m.enrichErr != nil {
		return nil, m.enrichErr
	}
	return m.enriched, nil
}

func (m *mockWikidataRepository) Birthdays(ctx context.Context, qid string) ([]string, error) {
	return m.birthdays[qid], nil
}

func (m *mockWikidataRepository) Students(ctx context.Context, qid string) ([]domain.LinkedItem, error) {
	return m.students[qid], nil
}

func (m *mockWikidataRepository) PoliticalParties(ctx context.Context, qid string) ([]domain.LinkedItem, error) {
	return m.parties[qid], nil
}

func (m *mockWikidataRepository) Supervisors(ctx context.Context, qid string) ([]domain.LinkedItem, error) {
	return m.supervisors[qid], nil
}

func TestResolvePrefersHumanWithDob(t *testing.T) {
	repo := &mockWikidataRepository{
		searchResults: map[string][]domain.SearchCandidate{
			"en": {
				{QID: "Q1", Label: "Bohr (crater)"},
				{QID: "Q2", Label: "Niels Bohr"},
			},
		},
		enriched: []domain.CandidateFeatures{
			{QID: "Q1", Label: "Bohr (crater)", Sitelinks: 40},
			{QID: "Q2", Label: "Niels Bohr", IsHuman: true, HasDob: true, Sitelinks: 120},
		},
	}
	svc := NewPersonService(repo, newTestLogger())

	resolved, err := svc.Resolve(context.Background(), "Niels Bohr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.QID != "Q2" || resolved.Person != "Niels Bohr" {
		t.Fatalf("unexpected resolution: %+v", resolved)
	}
}

func TestResolveLanguageFallback(t *testing.T) {
	repo := &mockWikidataRepository{
		searchResults: map[string][]domain.SearchCandidate{
			"da": {{QID: "Q7", Label: "Grundtvig"}},
		},
		enriched: []domain.CandidateFeatures{
			{QID: "Q7", Label: "N. F. S. Grundtvig", IsHuman: true, HasDob: true},
		},
	}
	svc := NewPersonService(repo, newTestLogger())

	resolved, err := svc.Resolve(context.Background(), "Grundtvig")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.QID != "Q7" {
		t.Fatalf("unexpected QID: %s", resolved.QID)
	}
	if !reflect.DeepEqual(repo.searchedLangs, []string{"en", "da"}) {
		t.Fatalf("unexpected language order: %v", repo.searchedLangs)
	}
}

func TestResolveContinuesPastFailedLanguage(t *testing.T) {
	repo := &mockWikidataRepository{
		searchErrs: map[string]error{
			"en": apperrors.NewUpstreamError("search down", nil),
		},
		searchResults: map[string][]domain.SearchCandidate{
			"da": {{QID: "Q7", Label: "Grundtvig"}},
		},
		enriched: []domain.CandidateFeatures{
			{QID: "Q7", Label: "N. F. S. Grundtvig", IsHuman: true, HasDob: true},
		},
	}
	svc := NewPersonService(repo, newTestLogger())

	resolved, err := svc.Resolve(context.Background(), "Grundtvig")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.QID != "Q7" {
		t.Fatalf("unexpected QID: %s", resolved.QID)
	}
}

func TestResolveSurfacesErrorWhenAllLanguagesFail(t *testing.T) {
	upstream := apperrors.NewUpstreamError("search down", nil)
	repo := &mockWikidataRepository{
		searchErrs: map[string]error{"en": upstream, "da": upstream, "auto": upstream},
	}
	svc := NewPersonService(repo, newTestLogger())

	_, err := svc.Resolve(context.Background(), "Grundtvig")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestResolveDanishBiasForShortQueries(t *testing.T) {
	repo := &mockWikidataRepository{
		searchResults: map[string][]domain.SearchCandidate{
			"en": {{QID: "Q1"}, {QID: "Q2"}},
		},
		enriched: []domain.CandidateFeatures{
			{QID: "Q1", Label: "A. Foreigner", IsHuman: true, HasDob: true, Sitelinks: 100},
			{QID: "Q2", Label: "A. Dane", IsHuman: true, HasDob: true, IsDanish: true, Sitelinks: 10},
		},
	}
	svc := NewPersonService(repo, newTestLogger())

	// Single-token queries trigger the Danish citizenship bias.
	resolved, err := svc.Resolve(context.Background(), "Dane")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.QID != "Q2" {
		t.Fatalf("expected Danish candidate, got %s", resolved.QID)
	}
}

func TestResolveFallsBackToSearchHitWhenEnrichmentFails(t *testing.T) {
	repo := &mockWikidataRepository{
		searchResults: map[string][]domain.SearchCandidate{
			"en": {{QID: "Q9", Label: "Somebody"}},
		},
		enrichErr: errors.New("sparql down"),
	}
	svc := NewPersonService(repo, newTestLogger())

	resolved, err := svc.Resolve(context.Background(), "Somebody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.QID != "Q9" || resolved.Person != "Somebody" {
		t.Fatalf("unexpected fallback resolution: %+v", resolved)
	}
}

func TestResolveNotFound(t *testing.T) {
	repo := &mockWikidataRepository{searchResults: map[string][]domain.SearchCandidate{}}
	svc := NewPersonService(repo, newTestLogger())

	_, err := svc.Resolve(context.Background(), "nobody at all")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestBirthdayReturnsEarliestDate(t *testing.T) {
	repo := resolvingRepo("Q2", "Niels Bohr")
	repo.birthdays = map[string][]string{"Q2": {"1885-10-07", "1885-01-01"}}
	svc := NewPersonService(repo, newTestLogger())

	resp, err := svc.Birthday(context.Background(), "Niels Bohr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Birthday == nil || *resp.Birthday != "1885-01-01" {
		t.Fatalf("unexpected birthday: %v", resp.Birthday)
	}
}

func TestBirthdayNilWhenUnknown(t *testing.T) {
	repo := resolvingRepo("Q2", "Niels Bohr")
	svc := NewPersonService(repo, newTestLogger())

	resp, err := svc.Birthday(context.Background(), "Niels Bohr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Birthday != nil {
		t.Fatalf("expected nil birthday, got %v", *resp.Birthday)
	}
}

func TestAllCombinesBirthdayAndStudents(t *testing.T) {
	repo := resolvingRepo("Q2", "Niels Bohr")
	repo.birthdays = map[string][]string{"Q2": {"1885-10-07"}}
	repo.students = map[string][]domain.LinkedItem{
		"Q2": {{Label: "Werner Heisenberg", QID: "Q40904"}},
	}
	svc := NewPersonService(repo, newTestLogger())

	resp, err := svc.All(context.Background(), "Niels Bohr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Birthday == nil || *resp.Birthday != "1885-10-07" {
		t.Fatalf("unexpected birthday: %v", resp.Birthday)
	}
	if len(resp.Students) != 1 || resp.Students[0].QID != "Q40904" {
		t.Fatalf("unexpected students: %v", resp.Students)
	}
}

func TestStudentsEmptyListNotNil(t *testing.T) {
	repo := resolvingRepo("Q2", "Niels Bohr")
	svc := NewPersonService(repo, newTestLogger())

	resp, err := svc.Students(context.Background(), "Niels Bohr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Students == nil || len(resp.Students) != 0 {
		t.Fatalf("expected empty non-nil students, got %v", resp.Students)
	}
}

// resolvingRepo is a repo that resolves any query to a single fixed entity.
func resolvingRepo(qid, label string) *mockWikidataRepository {
	return &mockWikidataRepository{
		searchResults: map[string][]domain.SearchCandidate{
			"en": {{QID: qid, Label: label}},
		},
		enriched: []domain.CandidateFeatures{
			{QID: qid, Label: label, IsHuman: true, HasDob: true},
		},
	}
}
