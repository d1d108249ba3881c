package domain

// PersonRequest names a person to look up, with optional surrounding text
// that may help disambiguation.
type PersonRequest struct {
	Person  string `json:"person"`
	Context string `json:"context,omitempty"`
}

// LinkedItem is a labeled Wikidata entity reference.
type LinkedItem struct {
	Label string `json:"label"`
	QID   string `json:"qid"`
}

// SearchCandidate is one hit from entity search, prior to enrichment.
type SearchCandidate struct {
	QID   string
	Label string
}

// CandidateFeatures are the disambiguation signals fetched per candidate.
type CandidateFeatures struct {
	QID       string
	Label     string
	IsHuman   bool
	HasDob    bool
	IsDanish  bool
	Sitelinks int
	Dob       string
}

// ResolvedPerson is the outcome of entity linking: the chosen QID with its
// canonical (English) label.
type ResolvedPerson struct {
	Person string `json:"person"`
	QID    string `json:"qid"`
}

// BirthdayResponse reports a person's date of birth as YYYY-MM-DD, or null
// when Wikidata has none.
type BirthdayResponse struct {
	Person   string  `json:"person"`
	QID      string  `json:"qid"`
	Birthday *string `json:"birthday"`
}

// StudentsResponse lists known students of a person.
type StudentsResponse struct {
	Person   string       `json:"person"`
	QID      string       `json:"qid"`
	Students []LinkedItem `json:"students"`
}

// PoliticalPartyResponse lists a person's party memberships.
type PoliticalPartyResponse struct {
	Person         string       `json:"person"`
	QID            string       `json:"qid"`
	PoliticalParty []LinkedItem `json:"political_party"`
}

// SupervisorResponse lists a person's doctoral advisors and teachers.
type SupervisorResponse struct {
	Person      string       `json:"person"`
	QID         string       `json:"qid"`
	Supervisors []LinkedItem `json:"supervisors"`
}

// AllResponse combines the birthday and students lookups.
type AllResponse struct {
	Person   string       `json:"person"`
	QID      string       `json:"qid"`
	Birthday *string      `json:"birthday"`
	Students []LinkedItem `json:"students"`
}
