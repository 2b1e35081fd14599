package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/daybook-app/daybook/internal/core/checklist"
)

const (
	templatePath = "/me/checklist/template"
	todayPath    = "/me/checklist/today"
)

// FetchChecklistTemplate returns the user's checklist template. A null or
// missing payload is an empty list, never an error.
func (s *Session) FetchChecklistTemplate(ctx context.Context) ([]checklist.TemplateItem, error) {
	status, raw, endpoint, err := s.do(ctx, http.MethodGet, templatePath, nil, nil)
	if err != nil {
		return nil, err
	}
	if _, err := classify(endpoint, status, false); err != nil {
		return nil, err
	}
	return checklist.NormalizeTemplate(raw), nil
}

type saveTemplateRequest struct {
	Items []checklist.TemplateItem `json:"items"`
}

// SaveChecklistTemplate submits the full replacement template and returns
// the server's resulting list, normalized through the same null-safety rule
// as fetch.
func (s *Session) SaveChecklistTemplate(ctx context.Context, items []checklist.TemplateItem) ([]checklist.TemplateItem, error) {
	if items == nil {
		items = []checklist.TemplateItem{}
	}
	status, raw, endpoint, err := s.do(ctx, http.MethodPut, templatePath, nil, saveTemplateRequest{Items: items})
	if err != nil {
		return nil, err
	}
	if _, err := classify(endpoint, status, false); err != nil {
		return nil, err
	}
	return checklist.NormalizeTemplate(raw), nil
}

// FetchTodayChecklist returns the checklist for the server's current day in
// the given timezone. The timezone is required; the server uses it to
// resolve which calendar day "today" is. A shape-invalid payload is a hard
// validation failure.
func (s *Session) FetchTodayChecklist(ctx context.Context, tz string) (checklist.Today, error) {
	query := url.Values{"tz": {tz}}
	status, raw, endpoint, err := s.do(ctx, http.MethodGet, todayPath, query, nil)
	if err != nil {
		return checklist.Today{}, err
	}
	if _, err := classify(endpoint, status, false); err != nil {
		return checklist.Today{}, err
	}
	return checklist.ValidateToday(raw)
}

type updateTodayRequest struct {
	Date    string             `json:"date"`
	Updates []checklist.Update `json:"updates"`
}

// UpdateTodayChecklist submits a batch of item-completion changes for a
// given date and returns the new authoritative checklist, validated under
// the same rule as fetch.
func (s *Session) UpdateTodayChecklist(ctx context.Context, date string, updates []checklist.Update) (checklist.Today, error) {
	status, raw, endpoint, err := s.do(ctx, http.MethodPut, todayPath, nil, updateTodayRequest{Date: date, Updates: updates})
	if err != nil {
		return checklist.Today{}, err
	}
	if _, err := classify(endpoint, status, false); err != nil {
		return checklist.Today{}, err
	}
	return checklist.ValidateToday(raw)
}
