package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/export"
	"github.com/sant0-9/intelligenn/internal/profile"
	"github.com/sant0-9/intelligenn/internal/report"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, q analysis.Query) (*analysis.Result, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.Result), args.Error(1)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	api := NewWebAPI(&mockAnalyzer{}, nil, Config{})
	rec := do(t, api.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyze(t *testing.T) {
	a := &mockAnalyzer{}
	a.On("Analyze", mock.Anything, analysis.Query{Company: "Acme", Language: "da"}).Return(&analysis.Result{
		Company:   "Acme",
		Language:  "da",
		Insights:  "### Key Decision Makers\n**CEO**: Jane",
		Script:    report.ScriptFallback,
		Citations: []report.Citation{{URI: "https://acme.dk/x", Title: "Acme"}},
	}, nil)

	api := NewWebAPI(a, nil, Config{})
	rec := do(t, api.Handler(), http.MethodPost, "/api/v1/analyze", `{"company":"Acme","language":"da"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc export.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Acme", doc.Company)
	require.Len(t, doc.Insights, 1)
	assert.Equal(t, report.IconDecision, doc.Insights[0].Icon)
	require.Len(t, doc.Script, 1)
	assert.Equal(t, report.ExecutiveSummaryTitle, doc.Script[0].Title)
	require.Len(t, doc.Sources, 1)
	assert.Equal(t, "acme.dk", doc.Sources[0].Host)

	a.AssertExpectations(t)
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"empty company", analysis.ErrEmptyCompany, http.StatusBadRequest, analysis.ErrEmptyCompany.Error()},
		{"unknown profile", fmt.Errorf("%w %q", profile.ErrUnknown, "x"), http.StatusBadRequest, "unknown caller profile"},
		{"upstream", &analysis.Error{Company: "Acme", Err: errors.New("401")}, http.StatusBadGateway, analysis.FailureMessage},
		{"timeout", &analysis.Error{Err: context.DeadlineExceeded}, http.StatusGatewayTimeout, analysis.FailureMessage},
		{"other", errors.New("boom"), http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &mockAnalyzer{}
			a.On("Analyze", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := do(t, NewWebAPI(a, nil, Config{}).Handler(), http.MethodPost, "/api/v1/analyze", `{"company":"Acme"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Error, tt.wantMsg)
		})
	}
}

func TestAnalyzeBadJSON(t *testing.T) {
	a := &mockAnalyzer{}
	rec := do(t, NewWebAPI(a, nil, Config{}).Handler(), http.MethodPost, "/api/v1/analyze", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	a.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestRender(t *testing.T) {
	body := `{
		"text": "### Golden Hook\nMarathon\n---SCRIPT_SECTION---\n### Objection Handling\n**Objection**: No\n**Rebuttal**: Yes",
		"citations": [{"uri": "https://a.com", "title": ""}, {"uri": "https://b.com", "title": "B"}]
	}`
	rec := do(t, NewWebAPI(&mockAnalyzer{}, nil, Config{}).Handler(), http.MethodPost, "/api/v1/render", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc export.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Insights, 1)
	assert.Equal(t, report.CategoryGoldenHook, doc.Insights[0].Category)
	assert.Equal(t, report.GoldenHookFooter, doc.Insights[0].Footer)
	require.Len(t, doc.Script, 1)
	assert.Equal(t, report.UnitRebuttal, doc.Script[0].Units[1].Kind)
	require.Len(t, doc.Sources, 1)
	assert.Equal(t, "B", doc.Sources[0].Title)
}

func TestRenderEmptyText(t *testing.T) {
	rec := do(t, NewWebAPI(&mockAnalyzer{}, nil, Config{}).Handler(), http.MethodPost, "/api/v1/render", `{"text":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc export.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Insights, 1)
	assert.Equal(t, report.ExecutiveSummaryTitle, doc.Insights[0].Title)
}

func TestStartStopsOnCancel(t *testing.T) {
	api := NewWebAPI(&mockAnalyzer{}, nil, Config{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- api.Start(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
