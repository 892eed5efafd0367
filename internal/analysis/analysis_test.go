package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/intelligenn/internal/llm"
	"github.com/sant0-9/intelligenn/internal/report"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*llm.CompletionResponse)
	return resp, args.Error(1)
}

func (m *mockProvider) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

const rawReport = "### Executive Summary\n**Estimated Employees**: 50\n\n---SCRIPT_SECTION---\n\n### Tailored Call Script\nHello"

func newAnalyzer(t *testing.T, p llm.Provider, opts Options) *Analyzer {
	t.Helper()
	a, err := New(p, nil, opts)
	require.NoError(t, err)
	return a
}

func TestAnalyze(t *testing.T) {
	p := &mockProvider{}
	p.On("Complete", mock.Anything, mock.MatchedBy(func(req *llm.CompletionRequest) bool {
		user := req.Messages[len(req.Messages)-1].Content
		return req.WebSearch &&
			strings.Contains(user, `"Acme A/S"`) &&
			strings.Contains(user, "DANISH") &&
			strings.Contains(user, "Representing Ensure")
	})).Return(&llm.CompletionResponse{
		Content: rawReport,
		Model:   "m",
		Citations: []report.Citation{
			{URI: "https://a.dk", Title: "A"},
			{URI: "", Title: "dropped"},
		},
	}, nil).Once()

	a := newAnalyzer(t, p, Options{})
	var stages []Stage
	ctx := WithProgress(context.Background(), func(pr Progress) { stages = append(stages, pr.Stage) })

	res, err := a.Analyze(ctx, Query{Company: "  Acme A/S ", Language: "da"})
	require.NoError(t, err)

	assert.Equal(t, "Acme A/S", res.Company)
	assert.Equal(t, "da", res.Language)
	assert.Equal(t, "ensure", res.Profile)
	assert.Equal(t, "mock", res.Provider)
	assert.Equal(t, "### Executive Summary\n**Estimated Employees**: 50", res.Insights)
	assert.Equal(t, "### Tailored Call Script\nHello", res.Script)
	assert.Equal(t, []report.Citation{{URI: "https://a.dk", Title: "A"}}, res.Citations)
	assert.False(t, res.Cached)
	assert.Equal(t, []Stage{StagePreparing, StageResearching, StageParsing, StageDone}, stages)

	p.AssertExpectations(t)
}

// startRun mirrors how the TUI drives an analysis: progress goes to a
// buffered channel with a non-blocking send, and the channel is closed once
// Analyze returns.
func startRun(a *Analyzer, company string) (<-chan Progress, <-chan error) {
	ch := make(chan Progress, 8)
	done := make(chan error, 1)
	ctx := WithProgress(context.Background(), func(pr Progress) {
		select {
		case ch <- pr:
		default:
		}
	})
	go func() {
		defer close(ch)
		_, err := a.Analyze(ctx, Query{Company: company})
		done <- err
	}()
	return ch, done
}

func TestAnalyzeOverlappingRunsKeepTheirOwnProgress(t *testing.T) {
	release := make(chan struct{})
	p := &mockProvider{}
	p.On("Complete", mock.Anything, forCompany("SlowCo")).
		Run(func(mock.Arguments) { <-release }).
		Return(&llm.CompletionResponse{Content: rawReport}, nil).Once()
	p.On("Complete", mock.Anything, forCompany("FastCo")).
		Return(&llm.CompletionResponse{Content: rawReport}, nil).Once()

	a := newAnalyzer(t, p, Options{})

	slowCh, slowDone := startRun(a, "SlowCo")
	var slow []Stage
	for pr := range slowCh {
		slow = append(slow, pr.Stage)
		if pr.Stage == StageResearching {
			break
		}
	}

	fastCh, fastDone := startRun(a, "FastCo")
	var fast []Stage
	for pr := range fastCh {
		fast = append(fast, pr.Stage)
	}
	require.NoError(t, <-fastDone)

	close(release)
	for pr := range slowCh {
		slow = append(slow, pr.Stage)
	}
	require.NoError(t, <-slowDone)

	all := []Stage{StagePreparing, StageResearching, StageParsing, StageDone}
	assert.Equal(t, all, fast)
	assert.Equal(t, all, slow)
	p.AssertExpectations(t)
}

func TestAnalyzeWithoutProgress(t *testing.T) {
	p := &mockProvider{}
	p.On("Complete", mock.Anything, mock.Anything).Return(&llm.CompletionResponse{Content: rawReport}, nil)

	_, err := newAnalyzer(t, p, Options{}).Analyze(context.Background(), Query{Company: "X"})
	require.NoError(t, err)
	assert.Nil(t, progressFrom(context.Background()))
}

func TestAnalyzeEmptyResponse(t *testing.T) {
	p := &mockProvider{}
	p.On("Complete", mock.Anything, mock.Anything).Return(&llm.CompletionResponse{}, nil)

	res, err := newAnalyzer(t, p, Options{}).Analyze(context.Background(), Query{Company: "X"})
	require.NoError(t, err)
	assert.Equal(t, report.NoContent, res.Insights)
	assert.Equal(t, report.ScriptFallback, res.Script)
	assert.Empty(t, res.Citations)
	assert.Equal(t, "en", res.Language)
}

func TestAnalyzeEmptyCompany(t *testing.T) {
	p := &mockProvider{}
	_, err := newAnalyzer(t, p, Options{}).Analyze(context.Background(), Query{Company: "   "})
	assert.ErrorIs(t, err, ErrEmptyCompany)
	p.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAnalyzeUnknownProfile(t *testing.T) {
	p := &mockProvider{}
	_, err := newAnalyzer(t, p, Options{}).Analyze(context.Background(), Query{Company: "X", Profile: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestAnalyzeUpstreamFailureIsOpaque(t *testing.T) {
	cause := errors.New("401 API key not valid")
	p := &mockProvider{}
	p.On("Complete", mock.Anything, mock.Anything).Return(nil, cause)

	_, err := newAnalyzer(t, p, Options{}).Analyze(context.Background(), Query{Company: "X"})
	require.Error(t, err)
	assert.Equal(t, FailureMessage, err.Error())
	assert.ErrorIs(t, err, cause)

	var aerr *Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "X", aerr.Company)
}

func TestAnalyzeCache(t *testing.T) {
	p := &mockProvider{}
	p.On("Complete", mock.Anything, mock.Anything).Return(&llm.CompletionResponse{Content: rawReport}, nil).Once()

	a := newAnalyzer(t, p, Options{CacheTTL: time.Minute})

	first, err := a.Analyze(context.Background(), Query{Company: "Acme"})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := a.Analyze(context.Background(), Query{Company: "ACME "})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Insights, second.Insights)

	p.AssertNumberOfCalls(t, "Complete", 1)

	a.Forget()
	p.On("Complete", mock.Anything, mock.Anything).Return(&llm.CompletionResponse{Content: "fresh"}, nil).Once()
	third, err := a.Analyze(context.Background(), Query{Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", third.Insights)
}

func TestAnalyzeCacheKeyIncludesLanguage(t *testing.T) {
	p := &mockProvider{}
	p.On("Complete", mock.Anything, mock.Anything).Return(&llm.CompletionResponse{Content: rawReport}, nil)

	a := newAnalyzer(t, p, Options{CacheTTL: time.Minute})
	_, err := a.Analyze(context.Background(), Query{Company: "Acme", Language: "en"})
	require.NoError(t, err)
	_, err = a.Analyze(context.Background(), Query{Company: "Acme", Language: "da"})
	require.NoError(t, err)

	p.AssertNumberOfCalls(t, "Complete", 2)
}

func TestAnalyzeRateLimitHonoursContext(t *testing.T) {
	p := &mockProvider{}
	p.On("Complete", mock.Anything, mock.Anything).Return(&llm.CompletionResponse{Content: rawReport}, nil).Once()

	a := newAnalyzer(t, p, Options{RequestsPerMinute: 1})
	_, err := a.Analyze(context.Background(), Query{Company: "One"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = a.Analyze(ctx, Query{Company: "Two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
	p.AssertNumberOfCalls(t, "Complete", 1)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "Researching", StageResearching.String())
	assert.Equal(t, "Unknown", Stage(42).String())
}
