// Package match identifies unmatched defendants against the external
// offender-records search service.
package match

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"caseflow/internal/cases/models"
)

// Result is the outcome of one matching attempt. When Matched is false the
// case proceeds without offender linkage; that is an outcome, not an error.
type Result struct {
	Matched         bool
	Identifiers     models.MatchIdentifiers
	ProbationStatus string
	Groups          *models.GroupedOffenderMatches
	MatchedBy       MatchedBy
	CandidateCount  int
}

// NoMatch is the canonical fallback outcome: empty matches, type NOTHING.
func NoMatch() Result {
	return Result{MatchedBy: MatchedByNothing}
}

// Engine runs the search-and-classify step for eligible defendants.
type Engine struct {
	search SearchClient
	status ProbationStatusClient
	titles []string
	logger *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithTitles overrides the honorific set stripped during name splitting.
func WithTitles(titles []string) Option {
	return func(e *Engine) {
		e.titles = titles
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func New(search SearchClient, status ProbationStatusClient, opts ...Option) (*Engine, error) {
	if search == nil {
		return nil, fmt.Errorf("search client is required")
	}
	if status == nil {
		return nil, fmt.Errorf("probation status client is required")
	}
	e := &Engine{search: search, status: status, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Match searches for the defendant and classifies the response. Exactly one
// candidate on an all-fields match resolves; every other shape is ambiguous
// and yields the no-match outcome. A failed search call returns NoMatch along
// with the error so the caller can record the failure while still persisting
// the case.
func (e *Engine) Match(ctx context.Context, fullName string, dateOfBirth time.Time) (Result, error) {
	name := SplitName(fullName, e.titles)

	resp, err := e.search.Search(ctx, name, dateOfBirth)
	if err != nil {
		return NoMatch(), fmt.Errorf("offender search: %w", err)
	}

	if !resp.Resolvable() {
		e.logger.DebugContext(ctx, "search did not resolve to a single offender",
			"matched_by", resp.MatchedBy,
			"candidates", len(resp.Matches),
		)
		out := NoMatch()
		out.MatchedBy = resp.MatchedBy
		out.CandidateCount = len(resp.Matches)
		return out, nil
	}

	candidate := resp.Matches[0]
	status := e.lookupStatus(ctx, candidate.MatchIdentifiers.CRN)

	return Result{
		Matched:         true,
		Identifiers:     candidate.MatchIdentifiers,
		ProbationStatus: status,
		MatchedBy:       resp.MatchedBy,
		CandidateCount:  1,
		Groups: &models.GroupedOffenderMatches{
			Matches: []models.OffenderMatch{{
				MatchIdentifiers: candidate.MatchIdentifiers,
				MatchType:        models.MatchTypeNameDOB,
				Confirmed:        false,
			}},
		},
	}, nil
}

// lookupStatus is best-effort; a failed lookup leaves the status empty rather
// than blocking the match.
func (e *Engine) lookupStatus(ctx context.Context, crn string) string {
	status, err := e.status.GetProbationStatus(ctx, crn)
	if err != nil {
		e.logger.WarnContext(ctx, "probation status lookup failed", "crn", crn, "error", err)
		return ""
	}
	return status
}
