package handler

import (
	"context"
	"net/http"
	"strings"

	"pdf-text-pipeline/internal/domain"
	"pdf-text-pipeline/internal/service"
)

// PersonHandler handles Wikidata person lookup requests.
type PersonHandler struct {
	personService *service.PersonService
	logger        domain.Logger
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(personService *service.PersonService, logger domain.Logger) *PersonHandler {
	return &PersonHandler{
		personService: personService,
		logger:        logger,
	}
}

// Birthday returns the person's date of birth.
func (h *PersonHandler) Birthday(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(ctx context.Context, person string) (interface{}, error) {
		return h.personService.Birthday(ctx, person)
	})
}

// Students returns the person's known students.
func (h *PersonHandler) Students(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(ctx context.Context, person string) (interface{}, error) {
		return h.personService.Students(ctx, person)
	})
}

// PoliticalParty returns the person's party memberships.
func (h *PersonHandler) PoliticalParty(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(ctx context.Context, person string) (interface{}, error) {
		return h.personService.PoliticalParty(ctx, person)
	})
}

// Supervisors returns the person's advisors and teachers.
func (h *PersonHandler) Supervisors(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(ctx context.Context, person string) (interface{}, error) {
		return h.personService.Supervisors(ctx, person)
	})
}

// All returns birthday and students in one response.
func (h *PersonHandler) All(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(ctx context.Context, person string) (interface{}, error) {
		return h.personService.All(ctx, person)
	})
}

func (h *PersonHandler) lookup(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, person string) (interface{}, error),
) {
	var req domain.PersonRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Person) == "" {
		writeError(w, http.StatusBadRequest, "person is required")
		return
	}

	result, err := fetch(r.Context(), req.Person)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
