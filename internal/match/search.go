package match

import (
	"context"
	"time"

	"caseflow/internal/cases/models"
)

// MatchedBy describes how the external search concluded.
type MatchedBy string

const (
	MatchedByAllSupplied      MatchedBy = "ALL_SUPPLIED"
	MatchedByAllSuppliedAlias MatchedBy = "ALL_SUPPLIED_ALIAS"
	MatchedByName             MatchedBy = "NAME"
	MatchedByPartialName      MatchedBy = "PARTIAL_NAME"
	MatchedByLenientNameDOB   MatchedBy = "PARTIAL_NAME_DOB_LENIENT"
	MatchedByExternalKey      MatchedBy = "EXTERNAL_KEY"
	MatchedByNothing          MatchedBy = "NOTHING"
)

// SearchRequest is the normalized query submitted to offender search.
type SearchRequest struct {
	FirstName   string `json:"firstName"`
	Surname     string `json:"surname"`
	DateOfBirth string `json:"dateOfBirth"`
}

// SearchCandidate is one offender returned by the search service.
type SearchCandidate struct {
	MatchIdentifiers models.MatchIdentifiers `json:"matchIdentifiers"`
}

// SearchResponse is the raw search outcome: zero or more candidates plus the
// match-type the service used to find them.
type SearchResponse struct {
	Matches   []SearchCandidate `json:"matches"`
	MatchedBy MatchedBy         `json:"matchedBy"`
}

// Resolvable reports whether the response identifies exactly one offender on
// an all-supplied-fields match. Anything weaker or wider is ambiguous.
func (r SearchResponse) Resolvable() bool {
	return r.MatchedBy == MatchedByAllSupplied && len(r.Matches) == 1
}

// SearchClient performs the external offender-records search.
type SearchClient interface {
	Search(ctx context.Context, name Name, dateOfBirth time.Time) (SearchResponse, error)
}

// ProbationStatusClient looks up an offender's current supervision status.
type ProbationStatusClient interface {
	GetProbationStatus(ctx context.Context, crn string) (string, error)
}
