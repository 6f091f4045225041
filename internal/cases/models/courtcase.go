// Package models holds the canonical case shapes persisted to the case store.
package models

import "time"

// CourtCase is the unit persisted to the case store. (CourtCode, CaseNo) is
// its stable identity across all operations; merge never regenerates it.
// Records are values: every new/merge mapping produces a fresh record.
type CourtCase struct {
	CaseNo    string `json:"caseNo"`
	CourtCode string `json:"courtCode"`
	CourtRoom string `json:"courtRoom,omitempty"`

	SessionStartTime time.Time `json:"sessionStartTime,omitempty"`

	DefendantName    string    `json:"defendantName,omitempty"`
	DefendantType    string    `json:"defendantType,omitempty"`
	DefendantAddress *Address  `json:"defendantAddress,omitempty"`
	DefendantDOB     time.Time `json:"defendantDob,omitempty"`
	DefendantSex     string    `json:"defendantSex,omitempty"`
	Nationality1     string    `json:"nationality1,omitempty"`
	Nationality2     string    `json:"nationality2,omitempty"`
	ListNo           string    `json:"listNo,omitempty"`

	Offences []Offence `json:"offences"`

	// Fields below are owned by downstream processes once set; merge
	// preserves them regardless of the incoming feed content.
	CRN                     string `json:"crn,omitempty"`
	PNC                     string `json:"pnc,omitempty"`
	CRO                     string `json:"cro,omitempty"`
	ProbationStatus         string `json:"probationStatus,omitempty"`
	Breach                  bool   `json:"breach"`
	SuspendedSentenceOrder  bool   `json:"suspendedSentenceOrder"`
	PreSentenceActivity     bool   `json:"preSentenceActivity"`
	PreviouslyKnownEndDate  string `json:"previouslyKnownTerminationDate,omitempty"`

	Groups *GroupedOffenderMatches `json:"-"`
}

// Key identifies a case across all store operations.
func (c CourtCase) Key() CaseKey {
	return CaseKey{CourtCode: c.CourtCode, CaseNo: c.CaseNo}
}

// ShouldMatchToOffender reports whether the matching engine should attempt to
// identify this defendant: person defendants with no known offender reference.
func (c CourtCase) ShouldMatchToOffender() bool {
	return c.DefendantType == "P" && c.CRN == ""
}

// CaseKey is the (court, case number) identity pair.
type CaseKey struct {
	CourtCode string
	CaseNo    string
}

// Address is the persisted defendant address.
type Address struct {
	Line1    string `json:"line1,omitempty"`
	Line2    string `json:"line2,omitempty"`
	Line3    string `json:"line3,omitempty"`
	Line4    string `json:"line4,omitempty"`
	Line5    string `json:"line5,omitempty"`
	PostCode string `json:"postcode,omitempty"`
}

// Offence is a persisted offence; slices are always ordered by ascending
// sequence number regardless of feed order.
type Offence struct {
	SequenceNumber  int    `json:"sequenceNumber"`
	OffenceTitle    string `json:"offenceTitle"`
	OffenceSummary  string `json:"offenceSummary,omitempty"`
	Act             string `json:"act,omitempty"`
}

// MatchIdentifiers carries the external references of one offender candidate.
type MatchIdentifiers struct {
	CRN string `json:"crn"`
	PNC string `json:"pnc,omitempty"`
	CRO string `json:"cro,omitempty"`
}

// MatchType classifies how a stored offender match was established.
type MatchType string

const (
	MatchTypeNameDOB MatchType = "NAME_DOB"
)

// OffenderMatch is one candidate offender identity proposed for a case.
// Confirmed is always false on creation; confirmation is a downstream human
// action.
type OffenderMatch struct {
	MatchIdentifiers MatchIdentifiers `json:"matchIdentifiers"`
	MatchType        MatchType        `json:"matchType"`
	Confirmed        bool             `json:"confirmed"`
}

// GroupedOffenderMatches is the match-group payload posted alongside a case.
type GroupedOffenderMatches struct {
	Matches []OffenderMatch `json:"matches"`
}
