package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"pdf-text-pipeline/internal/domain"
	apperrors "pdf-text-pipeline/pkg/errors"

	"golang.org/x/time/rate"
)

// Wikidata endpoints:
// - wbsearchentities: quick name -> entity candidates (entity linking)
// - SPARQL endpoint: structured queries for properties and relations
const (
	DefaultSearchURL = "https://www.wikidata.org/w/api.php"
	DefaultSPARQLURL = "https://query.wikidata.org/sparql"

	requestTimeout = 10 * time.Second
)

// WikidataClient implements domain.WikidataRepository against the live
// Wikidata API. Requests carry an identifying User-Agent and are rate
// limited, per Wikidata's usage policy.
type WikidataClient struct {
	httpClient *http.Client
	searchURL  string
	sparqlURL  string
	userAgent  string
	limiter    *rate.Limiter
	logger     domain.Logger
}

// NewWikidataClient creates a Wikidata client. Empty URLs fall back to the
// public endpoints.
func NewWikidataClient(config domain.Config, logger domain.Logger) *WikidataClient {
	searchURL := config.GetWikidataSearchURL()
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	sparqlURL := config.GetWikidataSPARQLURL()
	if sparqlURL == "" {
		sparqlURL = DefaultSPARQLURL
	}

	return &WikidataClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		searchURL:  searchURL,
		sparqlURL:  sparqlURL,
		userAgent:  config.GetWikidataUserAgent(),
		limiter:    rate.NewLimiter(rate.Limit(5), 5),
		logger:     logger,
	}
}

type searchResponse struct {
	Search []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"search"`
}

// SearchEntities runs wbsearchentities for name in the given language.
func (c *WikidataClient) SearchEntities(ctx context.Context, name, language string, limit int) ([]domain.SearchCandidate, error) {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", name)
	params.Set("language", language)
	params.Set("format", "json")
	params.Set("type", "item")
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, c.searchURL+"?"+params.Encode(), "application/json")
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.NewUpstreamError("invalid Wikidata search response", err)
	}

	candidates := make([]domain.SearchCandidate, 0, len(parsed.Search))
	for _, hit := range parsed.Search {
		candidates = append(candidates, domain.SearchCandidate{QID: hit.ID, Label: hit.Label})
	}
	return candidates, nil
}

// sparqlBinding is one variable binding row of a SPARQL SELECT result.
type sparqlBinding map[string]struct {
	Value string `json:"value"`
}

func (b sparqlBinding) value(key string) string {
	return b[key].Value
}

func (b sparqlBinding) boolean(key string) bool {
	return b[key].Value == "true"
}

type sparqlResponse struct {
	Results struct {
		Bindings []sparqlBinding `json:"bindings"`
	} `json:"results"`
}

// sparqlSelect runs a SPARQL SELECT query and returns the binding rows.
func (c *WikidataClient) sparqlSelect(ctx context.Context, query string) ([]sparqlBinding, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")

	body, err := c.get(ctx, c.sparqlURL+"?"+params.Encode(), "application/sparql+json")
	if err != nil {
		return nil, err
	}

	var parsed sparqlResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.NewUpstreamError("invalid SPARQL response", err)
	}
	return parsed.Results.Bindings, nil
}

// EnrichCandidates fetches the disambiguation features for candidate QIDs:
// instance-of-human (P31/Q5), has date of birth (P569), Danish citizenship
// (P27/Q35) and sitelink count as a popularity proxy.
func (c *WikidataClient) EnrichCandidates(ctx context.Context, qids []string) ([]domain.CandidateFeatures, error) {
	if len(qids) == 0 {
		return nil, nil
	}

	values := make([]string, 0, len(qids))
	for _, q := range qids {
		values = append(values, "wd:"+q)
	}

	// EXISTS(...) keeps the boolean variables present on every row.
	query := fmt.Sprintf(`
	SELECT ?item ?itemLabel ?sitelinks
	       (EXISTS { ?item wdt:P31 wd:Q5 } AS ?isHuman)
	       (EXISTS { ?item wdt:P569 ?anyDob } AS ?hasDob)
	       (EXISTS { ?item wdt:P27 wd:Q35 } AS ?isDanish)
	       ?dob
	WHERE {
	  VALUES ?item { %s }
	  OPTIONAL { ?item wikibase:sitelinks ?sitelinks . }
	  OPTIONAL { ?item wdt:P569 ?dob . }
	  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
	}
	`, strings.Join(values, " "))

	rows, err := c.sparqlSelect(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CandidateFeatures, 0, len(rows))
	for _, row := range rows {
		uri := row.value("item")
		if uri == "" {
			continue
		}

		sitelinks, _ := strconv.Atoi(row.value("sitelinks"))

		out = append(out, domain.CandidateFeatures{
			QID:       qidFromURI(uri),
			Label:     row.value("itemLabel"),
			IsHuman:   row.boolean("isHuman"),
			HasDob:    row.boolean("hasDob"),
			IsDanish:  row.boolean("isDanish"),
			Sitelinks: sitelinks,
			Dob:       NormalizeDate(row.value("dob")),
		})
	}
	return out, nil
}

// Birthdays returns the normalized dates of birth (P569) for a QID.
func (c *WikidataClient) Birthdays(ctx context.Context, qid string) ([]string, error) {
	query := fmt.Sprintf(`
	SELECT ?dob WHERE {
	  wd:%s wdt:P569 ?dob .
	} LIMIT 10
	`, qid)

	rows, err := c.sparqlSelect(ctx, query)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(rows))
	for _, row := range rows {
		if d := NormalizeDate(row.value("dob")); d != "" {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// Students returns people listed as students of a QID. Student relations
// are modeled inconsistently on Wikidata, so this uses a property path over
// P185 (doctoral student), P802 (student) and the inverses of P184 (doctoral
// advisor) and P1066 (student of). Result order is preserved with QID dedup.
func (c *WikidataClient) Students(ctx context.Context, qid string) ([]domain.LinkedItem, error) {
	query := fmt.Sprintf(`
	SELECT ?student ?studentLabel WHERE {
	  wd:%s (wdt:P185|wdt:P802|^wdt:P184|^wdt:P1066) ?student .
	  SERVICE wikibase:label { bd:serviceParam wikibase:language "en,da". }
	}
	`, qid)

	rows, err := c.sparqlSelect(ctx, query)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(rows))
	out := make([]domain.LinkedItem, 0, len(rows))
	for _, row := range rows {
		uri := row.value("student")
		if uri == "" {
			continue
		}
		sqid := qidFromURI(uri)
		if seen[sqid] {
			continue
		}
		seen[sqid] = true
		out = append(out, domain.LinkedItem{Label: row.value("studentLabel"), QID: sqid})
	}
	return out, nil
}

// PoliticalParties returns party memberships (P102), sorted by label then QID.
func (c *WikidataClient) PoliticalParties(ctx context.Context, qid string) ([]domain.LinkedItem, error) {
	query := fmt.Sprintf(`
	SELECT ?party ?partyLabel WHERE {
	  wd:%s wdt:P102 ?party .
	  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
	}
	`, qid)

	return c.sortedItems(ctx, query, "party", "partyLabel")
}

// Supervisors returns doctoral advisors (P184) and teachers (P1066), sorted
// by label then QID.
func (c *WikidataClient) Supervisors(ctx context.Context, qid string) ([]domain.LinkedItem, error) {
	query := fmt.Sprintf(`
	SELECT DISTINCT ?supervisor ?supervisorLabel WHERE {
	  { wd:%s wdt:P184 ?supervisor . }
	  UNION
	  { wd:%s wdt:P1066 ?supervisor . }
	  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
	}
	`, qid, qid)

	return c.sortedItems(ctx, query, "supervisor", "supervisorLabel")
}

func (c *WikidataClient) sortedItems(ctx context.Context, query, uriVar, labelVar string) ([]domain.LinkedItem, error) {
	rows, err := c.sparqlSelect(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]domain.LinkedItem, 0, len(rows))
	for _, row := range rows {
		uri := row.value(uriVar)
		if uri == "" {
			continue
		}
		out = append(out, domain.LinkedItem{Label: row.value(labelVar), QID: qidFromURI(uri)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].QID < out[j].QID
	})
	return out, nil
}

func (c *WikidataClient) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build Wikidata request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("Wikidata request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to read Wikidata response", err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		c.logger.Warn("Wikidata returned non-200", "status", resp.StatusCode, "body", snippet)
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("Wikidata request failed with status %d", resp.StatusCode), nil)
	}
	return body, nil
}

// qidFromURI converts a full entity URI to its QID (.../Q123 -> Q123).
func qidFromURI(uri string) string {
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		return uri[idx+1:]
	}
	return uri
}

// NormalizeDate reduces Wikidata time values to YYYY-MM-DD. SPARQL usually
// returns ISO timestamps like "1885-10-07T00:00:00Z"; BCE dates carry a
// leading minus ("-0500-01-01T00:00:00Z"). Unrecognized values normalize
// to "".
func NormalizeDate(value string) string {
	if value == "" {
		return ""
	}
	if idx := strings.Index(value, "T"); idx >= 0 {
		value = value[:idx]
	}
	sign := ""
	if strings.HasPrefix(value, "-") {
		sign = "-"
		value = value[1:]
	}
	if len(value) >= 10 && value[4] == '-' && value[7] == '-' {
		return sign + value[:10]
	}
	return ""
}
