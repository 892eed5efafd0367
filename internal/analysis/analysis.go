// Package analysis turns a company name into a split, cited research report.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sant0-9/intelligenn/internal/llm"
	"github.com/sant0-9/intelligenn/internal/logging"
	"github.com/sant0-9/intelligenn/internal/profile"
	"github.com/sant0-9/intelligenn/internal/prompts"
	"github.com/sant0-9/intelligenn/internal/report"
)

// ErrEmptyCompany is returned for a blank company name
var ErrEmptyCompany = errors.New("company name is empty")

// FailureMessage is what users see when report generation fails.
const FailureMessage = "Failed to analyze company. Please check your API key and try again."

// Error hides the upstream cause behind FailureMessage. The cause stays
// reachable through errors.Is / errors.As.
type Error struct {
	Company string
	Err     error
}

func (e *Error) Error() string { return FailureMessage }

func (e *Error) Unwrap() error { return e.Err }

// Query is one analysis request
type Query struct {
	Company  string `json:"company"`
	Language string `json:"language,omitempty"`
	Profile  string `json:"profile,omitempty"`
}

// Result is a finished analysis
type Result struct {
	Company   string            `json:"company"`
	Language  string            `json:"language"`
	Profile   string            `json:"profile"`
	Provider  string            `json:"provider"`
	Model     string            `json:"model,omitempty"`
	Insights  string            `json:"insights"`
	Script    string            `json:"script"`
	Citations []report.Citation `json:"sources"`
	Usage     llm.Usage         `json:"-"`
	CreatedAt time.Time         `json:"created_at"`
	Cached    bool              `json:"cached,omitempty"`
}

// Options tune an Analyzer
type Options struct {
	Model string
	// CacheTTL of zero disables result caching
	CacheTTL time.Duration
	// RequestsPerMinute of zero or less disables rate limiting
	RequestsPerMinute int
	Logger            *zap.Logger
}

// Analyzer runs analyses against one provider
type Analyzer struct {
	provider llm.Provider
	profiles *profile.Index
	model    string
	limiter  *rate.Limiter
	cache    *cache.Cache
	logger   *zap.Logger
	now      func() time.Time
}

// New creates an analyzer. profiles may be nil, in which case only the
// built-in profiles are available.
func New(provider llm.Provider, profiles *profile.Index, opts Options) (*Analyzer, error) {
	if profiles == nil {
		var err error
		if profiles, err = profile.NewIndex(""); err != nil {
			return nil, err
		}
	}

	a := &Analyzer{
		provider: provider,
		profiles: profiles,
		model:    opts.Model,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		logger:   logging.OrNop(opts.Logger).Named("analysis"),
		now:      time.Now,
	}
	if opts.RequestsPerMinute > 0 {
		a.limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), 1)
	}
	if opts.CacheTTL > 0 {
		a.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return a, nil
}

// ProviderName returns the name of the backing provider
func (a *Analyzer) ProviderName() string {
	return a.provider.Name()
}

// Analyze researches q.Company and returns the split report with its
// filtered sources. Progress goes to the callback attached with WithProgress.
func (a *Analyzer) Analyze(ctx context.Context, q Query) (*Result, error) {
	q, err := a.normalize(q)
	if err != nil {
		return nil, err
	}
	log := a.logger.With(
		zap.String("company", q.Company),
		zap.String("language", q.Language),
		zap.String("profile", q.Profile),
	)

	key := a.cacheKey(q)
	if a.cache != nil {
		if v, found := a.cache.Get(key); found {
			res := *v.(*Result)
			res.Cached = true
			log.Debug("cache hit")
			progress(ctx, StageDone, "Loaded from cache")
			return &res, nil
		}
	}

	progress(ctx, StagePreparing, "Preparing research brief...")

	prof, err := a.profiles.Get(q.Profile)
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.BuildAnalysisPrompt(prompts.AnalysisData{
		Company:          q.Company,
		Language:         q.Language,
		Caller:           prof.CallerName(),
		CallerContext:    prof.Body,
		RebuttalStrategy: prof.RebuttalStrategy,
	})
	if err != nil {
		return nil, err
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	progress(ctx, StageResearching, fmt.Sprintf("Researching %s...", q.Company))
	start := a.now()

	req := llm.NewRequest(a.model, prompts.SystemPrompt, prompt)
	req.WebSearch = true

	resp, err := a.provider.Complete(ctx, req)
	if err != nil {
		log.Error("report generation failed", zap.String("provider", a.provider.Name()), zap.Error(err))
		return nil, &Error{Company: q.Company, Err: err}
	}

	progress(ctx, StageParsing, "Parsing report...")

	parts := report.Split(resp.Content)
	res := &Result{
		Company:   q.Company,
		Language:  q.Language,
		Profile:   prof.Name,
		Provider:  a.provider.Name(),
		Model:     resp.Model,
		Insights:  parts.Insights,
		Script:    parts.Script,
		Citations: report.FilterCitations(resp.Citations),
		Usage:     resp.Usage,
		CreatedAt: a.now(),
	}

	log.Info("analysis complete",
		zap.Duration("elapsed", res.CreatedAt.Sub(start)),
		zap.Int("sources", len(res.Citations)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Bool("script_missing", parts.Script == report.ScriptFallback),
	)

	if a.cache != nil {
		stored := *res
		a.cache.Set(key, &stored, cache.DefaultExpiration)
	}

	progress(ctx, StageDone, "Analysis complete")
	return res, nil
}

// Forget drops every cached result
func (a *Analyzer) Forget() {
	if a.cache != nil {
		a.cache.Flush()
	}
}

func (a *Analyzer) normalize(q Query) (Query, error) {
	q.Company = strings.TrimSpace(q.Company)
	if q.Company == "" {
		return q, ErrEmptyCompany
	}
	if q.Language != "da" {
		q.Language = "en"
	}
	if q.Profile == "" {
		q.Profile = profile.DefaultName
	}
	return q, nil
}

func (a *Analyzer) cacheKey(q Query) string {
	return strings.Join([]string{
		a.provider.Name(),
		a.model,
		q.Profile,
		q.Language,
		strings.ToLower(q.Company),
	}, "|")
}
