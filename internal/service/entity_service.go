package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"pdf-text-pipeline/internal/domain"
	apperrors "pdf-text-pipeline/pkg/errors"
)

const entityPromptTemplate = `Extract all named entities from the text and group them by category. ` +
	`Return ONLY valid JSON with the schema: {"persons":[...], "gpe":[...], ...}. ` +
	`Do not add code fences or extra text. ` +
	`Example response: {"persons":["Mario Rossi"],"gpe":["Roma"]}. ` +
	`Use standard NER category names (e.g., persons, org, gpe, loc, date, time, money, ` +
	`percent, product, event, work_of_art, law, language, norp, fac, quantity, ordinal, cardinal). ` +
	`If a category is empty, omit it. If no entities are found, return {}.

Text:
%s`

// Models wrap JSON in prose or code fences often enough that we fish the
// first object out of the reply.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// EntityService extracts named entities from text through a chat model.
type EntityService struct {
	model  domain.ChatModel
	logger domain.Logger
}

// NewEntityService creates a new entity extraction service
func NewEntityService(model domain.ChatModel, logger domain.Logger) *EntityService {
	return &EntityService{
		model:  model,
		logger: logger,
	}
}

// Extract returns entities grouped by NER category.
func (s *EntityService) Extract(ctx context.Context, text string) (map[string][]string, error) {
	if s.model == nil {
		return nil, apperrors.NewUpstreamError("no chat model configured", nil)
	}

	prompt := fmt.Sprintf(entityPromptTemplate, text)
	content, err := s.model.Complete(ctx, prompt)
	if err != nil {
		return nil, apperrors.NewUpstreamError("chat model request failed", err)
	}

	entities, err := parseEntities(content)
	if err != nil {
		s.logger.Warn("Failed to parse model output", "output", truncate(content, 200), "error", err)
		return nil, apperrors.NewUpstreamError("failed to parse model output", err)
	}
	return entities, nil
}

// parseEntities decodes the model reply into category -> names. A direct
// JSON parse is tried first, then the first {...} block in the reply.
// Non-string-list values are dropped rather than failing the request.
func parseEntities(content string) (map[string][]string, error) {
	var data map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		match := jsonObjectRe.FindString(content)
		if match == "" {
			return nil, fmt.Errorf("no JSON object found in response")
		}
		if err := json.Unmarshal([]byte(match), &data); err != nil {
			return nil, fmt.Errorf("invalid JSON object in response: %w", err)
		}
	}

	cleaned := make(map[string][]string, len(data))
	for key, raw := range data {
		var items []interface{}
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		values := make([]string, 0, len(items))
		for _, item := range items {
			values = append(values, fmt.Sprint(item))
		}
		cleaned[key] = values
	}
	return cleaned, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
