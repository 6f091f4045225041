// Package parser decodes and validates raw hearing-list payloads. Decoding
// and validation are separate passes so a caller can distinguish a payload
// that is not well-formed from one that is merely incomplete.
package parser

import (
	"encoding/xml"
	"fmt"
	"strings"

	"caseflow/internal/feed/models"
	pkgerrors "caseflow/pkg/errors"
)

// Parser turns raw feed payloads into validated document trees.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse decodes the payload and validates required fields. Unknown elements
// are ignored for forward compatibility with feed evolution. The returned
// document has session court codes backfilled from the batch OU code where
// absent at session level.
func (p *Parser) Parse(payload string) (*models.Document, error) {
	var doc models.Document
	if err := xml.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeParse, "payload is not well-formed")
	}

	p.applyDefaults(&doc)

	if err := p.validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// applyDefaults resolves batch identity from the source file name when the
// explicit info fields are absent, then backfills session court codes from
// the batch OU code. Fallback only, never an override.
func (p *Parser) applyDefaults(doc *models.Document) {
	info := &doc.Info
	if (info.OUCode == "" || info.DateOfHearing.IsZero()) && info.SourceFileName != "" {
		if detail, err := ParseSourceFileName(info.SourceFileName); err == nil {
			if info.OUCode == "" {
				info.OUCode = detail.OUCode
			}
			if info.DateOfHearing.IsZero() {
				info.DateOfHearing = models.Date{Time: detail.DateOfHearing}
			}
			if info.SequenceNumber == 0 {
				info.SequenceNumber = detail.SequenceNumber
			}
		}
	}

	batchCourt := CourtCodeFromOU(info.OUCode)
	for i := range doc.Job.Sessions {
		s := &doc.Job.Sessions[i]
		if s.CourtCode == "" {
			s.CourtCode = batchCourt
		} else {
			s.CourtCode = CourtCodeFromOU(s.CourtCode)
		}
		if s.DateOfHearing.IsZero() {
			s.DateOfHearing = info.DateOfHearing
		}
	}
}

// validate walks the whole tree and aggregates every violation so callers can
// report the complete set, not just the first.
func (p *Parser) validate(doc *models.Document) error {
	var v violations

	if doc.Info.DateOfHearing.IsZero() {
		v.add("info.date_of_hearing", "is required")
	}
	if strings.TrimSpace(doc.Info.OUCode) == "" {
		v.add("info.ou_code", "is required")
	}

	for si, s := range doc.Job.Sessions {
		path := fmt.Sprintf("job.sessions[%d]", si)
		if s.ID == 0 {
			v.add(path+".s_id", "is required")
		}
		if s.DateOfHearing.IsZero() {
			v.add(path+".date_of_hearing", "is required")
		}
		if strings.TrimSpace(s.CourtCode) == "" {
			v.add(path+".court_code", "is required")
		}
		for bi, b := range s.Blocks {
			for ci, c := range b.Cases {
				casePath := fmt.Sprintf("%s.blocks[%d].cases[%d]", path, bi, ci)
				if strings.TrimSpace(c.CaseNo) == "" {
					v.add(casePath+".case_no", "must not be blank")
				}
				for oi, o := range c.Offences {
					if strings.TrimSpace(o.Title) == "" {
						v.add(fmt.Sprintf("%s.offences[%d].title", casePath, oi), "must not be blank")
					}
				}
			}
		}
	}

	return v.err()
}

// Violation is a single validation failure at a field path.
type Violation struct {
	Path   string
	Reason string
}

func (f Violation) String() string { return f.Path + " " + f.Reason }

// ValidationError aggregates every violation found in one document.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, f := range e.Violations {
		parts[i] = f.String()
	}
	return "document failed validation: " + strings.Join(parts, "; ")
}

type violations struct {
	list []Violation
}

func (v *violations) add(path, reason string) {
	v.list = append(v.list, Violation{Path: path, Reason: reason})
}

func (v *violations) err() error {
	if len(v.list) == 0 {
		return nil
	}
	return pkgerrors.Wrap(&ValidationError{Violations: v.list}, pkgerrors.CodeValidation, "document failed validation")
}
