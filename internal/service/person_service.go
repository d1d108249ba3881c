package service

import (
	"context"
	"sort"
	"strings"

	"pdf-text-pipeline/internal/domain"
	apperrors "pdf-text-pipeline/pkg/errors"

	"golang.org/x/sync/errgroup"
)

const maxCandidateQIDs = 12

// PersonService links person names to Wikidata entities and answers
// relation lookups for them.
type PersonService struct {
	wikidata domain.WikidataRepository
	logger   domain.Logger
}

// NewPersonService creates a new person lookup service
func NewPersonService(wikidata domain.WikidataRepository, logger domain.Logger) *PersonService {
	return &PersonService{
		wikidata: wikidata,
		logger:   logger,
	}
}

// Resolve links a (possibly partial) person name to the best Wikidata entity
// and returns its QID with the English label as canonical output.
func (s *PersonService) Resolve(ctx context.Context, person string) (*domain.ResolvedPerson, error) {
	candidates, err := s.searchWithFallback(ctx, person)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, apperrors.NewNotFoundError("no matching Wikidata entity found")
	}

	// Top-k unique QIDs from the search ranking.
	seen := make(map[string]bool, maxCandidateQIDs)
	qids := make([]string, 0, maxCandidateQIDs)
	for _, c := range candidates {
		if c.QID == "" || seen[c.QID] {
			continue
		}
		seen[c.QID] = true
		qids = append(qids, c.QID)
		if len(qids) >= maxCandidateQIDs {
			break
		}
	}

	enriched, err := s.wikidata.EnrichCandidates(ctx, qids)
	if err != nil || len(enriched) == 0 {
		// Enrichment failed: fall back to the best search candidate.
		if err != nil {
			s.logger.Warn("Candidate enrichment failed, using top search hit", "error", err, "person", person)
		}
		top := candidates[0]
		label := top.Label
		if label == "" {
			label = person
		}
		return &domain.ResolvedPerson{Person: label, QID: top.QID}, nil
	}

	best := pickCandidate(person, enriched)
	label := best.Label
	if label == "" {
		label = person
	}
	return &domain.ResolvedPerson{Person: label, QID: best.QID}, nil
}

// searchWithFallback tries English first, then Danish, then auto language.
func (s *PersonService) searchWithFallback(ctx context.Context, person string) ([]domain.SearchCandidate, error) {
	var lastErr error
	for _, lang := range []string{"en", "da", "auto"} {
		candidates, err := s.wikidata.SearchEntities(ctx, person, lang, 20)
		if err != nil {
			lastErr = err
			continue
		}
		if len(candidates) > 0 {
			return candidates, nil
		}
	}
	return nil, lastErr
}

// pickCandidate applies the disambiguation scoring: human and DOB are strong
// signals, Danish citizenship helps for short or initialed queries, label
// containment and sitelink popularity break ties.
func pickCandidate(person string, enriched []domain.CandidateFeatures) domain.CandidateFeatures {
	token := strings.ToLower(strings.TrimSpace(person))
	isShort := len(strings.Fields(token)) == 1 || strings.Contains(token, ".")

	// Hard constraint: prefer humans, then candidates with a known DOB.
	pool := filterCandidates(enriched, func(c domain.CandidateFeatures) bool { return c.IsHuman })
	if len(pool) == 0 {
		pool = enriched
	}
	if withDob := filterCandidates(pool, func(c domain.CandidateFeatures) bool { return c.HasDob }); len(withDob) > 0 {
		pool = withDob
	}

	score := func(c domain.CandidateFeatures) float64 {
		s := 0.0
		if c.IsHuman {
			s += 1000.0
		}
		if c.HasDob {
			s += 300.0
		}
		if isShort && c.IsDanish {
			s += 80.0
		}
		if token != "" && strings.Contains(strings.ToLower(c.Label), token) {
			s += 10.0
		}
		s += 0.5 * float64(c.Sitelinks)
		return s
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return score(pool[i]) > score(pool[j])
	})
	return pool[0]
}

func filterCandidates(in []domain.CandidateFeatures, keep func(domain.CandidateFeatures) bool) []domain.CandidateFeatures {
	out := make([]domain.CandidateFeatures, 0, len(in))
	for _, c := range in {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Birthday resolves a person and returns the earliest known date of birth.
func (s *PersonService) Birthday(ctx context.Context, person string) (*domain.BirthdayResponse, error) {
	resolved, err := s.Resolve(ctx, person)
	if err != nil {
		return nil, err
	}
	dob, err := s.earliestBirthday(ctx, resolved.QID)
	if err != nil {
		return nil, err
	}
	return &domain.BirthdayResponse{Person: resolved.Person, QID: resolved.QID, Birthday: dob}, nil
}

// Students resolves a person and returns their known students.
func (s *PersonService) Students(ctx context.Context, person string) (*domain.StudentsResponse, error) {
	resolved, err := s.Resolve(ctx, person)
	if err != nil {
		return nil, err
	}
	students, err := s.wikidata.Students(ctx, resolved.QID)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []domain.LinkedItem{}
	}
	return &domain.StudentsResponse{Person: resolved.Person, QID: resolved.QID, Students: students}, nil
}

// PoliticalParty resolves a person and returns their party memberships.
func (s *PersonService) PoliticalParty(ctx context.Context, person string) (*domain.PoliticalPartyResponse, error) {
	resolved, err := s.Resolve(ctx, person)
	if err != nil {
		return nil, err
	}
	parties, err := s.wikidata.PoliticalParties(ctx, resolved.QID)
	if err != nil {
		return nil, err
	}
	if parties == nil {
		parties = []domain.LinkedItem{}
	}
	return &domain.PoliticalPartyResponse{Person: resolved.Person, QID: resolved.QID, PoliticalParty: parties}, nil
}

// Supervisors resolves a person and returns their advisors and teachers.
func (s *PersonService) Supervisors(ctx context.Context, person string) (*domain.SupervisorResponse, error) {
	resolved, err := s.Resolve(ctx, person)
	if err != nil {
		return nil, err
	}
	supervisors, err := s.wikidata.Supervisors(ctx, resolved.QID)
	if err != nil {
		return nil, err
	}
	if supervisors == nil {
		supervisors = []domain.LinkedItem{}
	}
	return &domain.SupervisorResponse{Person: resolved.Person, QID: resolved.QID, Supervisors: supervisors}, nil
}

// All resolves a person once and fetches birthday and students in parallel.
func (s *PersonService) All(ctx context.Context, person string) (*domain.AllResponse, error) {
	resolved, err := s.Resolve(ctx, person)
	if err != nil {
		return nil, err
	}

	var (
		dob      *string
		students []domain.LinkedItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dob, err = s.earliestBirthday(gctx, resolved.QID)
		return err
	})
	g.Go(func() error {
		var err error
		students, err = s.wikidata.Students(gctx, resolved.QID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if students == nil {
		students = []domain.LinkedItem{}
	}
	return &domain.AllResponse{Person: resolved.Person, QID: resolved.QID, Birthday: dob, Students: students}, nil
}

// earliestBirthday fetches P569 values and returns the earliest one, or nil
// when Wikidata has none. Most entities only carry a single DOB.
func (s *PersonService) earliestBirthday(ctx context.Context, qid string) (*string, error) {
	dates, err := s.wikidata.Birthdays(ctx, qid)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}
	sort.Strings(dates)
	return &dates[0], nil
}
