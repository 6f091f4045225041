// Package mapper converts raw feed cases into canonical case records.
package mapper

import (
	"sort"

	"caseflow/internal/cases/models"
	"caseflow/internal/feed/extract"
	feed "caseflow/internal/feed/models"
)

// Mapper builds canonical case records. The default probation status is an
// explicit constructor argument, not ambient state.
type Mapper struct {
	defaultProbationStatus string
}

func New(defaultProbationStatus string) *Mapper {
	return &Mapper{defaultProbationStatus: defaultProbationStatus}
}

// NewFromCase builds a canonical record for a case seen for the first time.
// Fields unknowable from the feed alone take defaults.
func (m *Mapper) NewFromCase(sc extract.SessionCase) models.CourtCase {
	out := m.fromFeed(sc)
	out.ProbationStatus = m.defaultProbationStatus
	return out
}

// Merge overlays the incoming case onto a previously stored record. Identity
// and the downstream-owned fields come from the existing record; every other
// field comes unconditionally from the feed, absent values included. The feed
// is authoritative for the fields it owns.
func (m *Mapper) Merge(sc extract.SessionCase, existing models.CourtCase) models.CourtCase {
	out := m.fromFeed(sc)
	out.CaseNo = existing.CaseNo
	out.CourtCode = existing.CourtCode

	out.CRN = existing.CRN
	out.PNC = existing.PNC
	out.CRO = existing.CRO
	out.ProbationStatus = existing.ProbationStatus
	out.Breach = existing.Breach
	out.SuspendedSentenceOrder = existing.SuspendedSentenceOrder
	out.PreSentenceActivity = existing.PreSentenceActivity
	out.PreviouslyKnownEndDate = existing.PreviouslyKnownEndDate
	return out
}

// NewFromCaseAndOffender builds a record for a freshly matched defendant,
// attaching the offender identifiers and match group for persistence.
func (m *Mapper) NewFromCaseAndOffender(sc extract.SessionCase, ids models.MatchIdentifiers, probationStatus string, groups *models.GroupedOffenderMatches) models.CourtCase {
	return m.AttachOffender(m.fromFeed(sc), ids, probationStatus, groups)
}

// AttachOffender returns a copy of the record carrying the matched offender's
// identifiers and match group. An empty status falls back to the default.
func (m *Mapper) AttachOffender(record models.CourtCase, ids models.MatchIdentifiers, probationStatus string, groups *models.GroupedOffenderMatches) models.CourtCase {
	record.CRN = ids.CRN
	record.PNC = ids.PNC
	record.CRO = ids.CRO
	record.ProbationStatus = probationStatus
	if record.ProbationStatus == "" {
		record.ProbationStatus = m.defaultProbationStatus
	}
	record.Groups = groups
	return record
}

// fromFeed maps the feed-owned fields. Offences are reordered by ascending
// sequence number; input order carries no meaning. Feed-listed PNC and CRO
// references seed a new record; on merge the stored values replace them, and
// a match replaces them with the resolved offender's.
func (m *Mapper) fromFeed(sc extract.SessionCase) models.CourtCase {
	c, s := sc.Case, sc.Session
	out := models.CourtCase{
		CaseNo:           c.CaseNo,
		CourtCode:        s.CourtCode,
		CourtRoom:        s.CourtRoom,
		SessionStartTime: s.SessionStartTime(),
		DefendantName:    c.Name,
		DefendantType:    string(c.Type),
		DefendantDOB:     c.DateOfBirth.Time,
		DefendantSex:     c.Sex,
		Nationality1:     c.Nationality1,
		Nationality2:     c.Nationality2,
		ListNo:           c.ListNo,
		PNC:              c.PNCID,
		CRO:              c.CRO,
		Offences:         mapOffences(c.Offences),
	}
	if c.Address != nil {
		out.DefendantAddress = &models.Address{
			Line1:    c.Address.Line1,
			Line2:    c.Address.Line2,
			Line3:    c.Address.Line3,
			Line4:    c.Address.Line4,
			Line5:    c.Address.Line5,
			PostCode: c.Address.PostCode,
		}
	}
	return out
}

func mapOffences(in []feed.Offence) []models.Offence {
	out := make([]models.Offence, len(in))
	for i, o := range in {
		out[i] = models.Offence{
			SequenceNumber: o.Sequence,
			OffenceTitle:   o.Title,
			OffenceSummary: o.Summary,
			Act:            o.Act,
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SequenceNumber < out[j].SequenceNumber })
	return out
}
