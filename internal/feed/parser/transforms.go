package parser

import (
	"strconv"
	"strings"
	"time"

	pkgerrors "caseflow/pkg/errors"
)

// courtCodeLen is the number of leading characters of an OU/site code that
// identify the court location; the remainder encodes the administrative unit.
const courtCodeLen = 5

// CourtCodeFromOU truncates an OU or site code to its court code. Codes
// shorter than the court-code length are returned unchanged.
func CourtCodeFromOU(ouCode string) string {
	ouCode = strings.ToUpper(strings.TrimSpace(ouCode))
	if len(ouCode) <= courtCodeLen {
		return ouCode
	}
	return ouCode[:courtCodeLen]
}

// SourceFileDetail is the batch identity encoded in a feed file name.
type SourceFileDetail struct {
	SequenceNumber int64
	DateOfHearing  time.Time
	OUCode         string
}

const sourceFileDateFormat = "02012006"

// ParseSourceFileName splits a filename-encoded token of the form
// <sequence>_<ddMMyyyy>_<suffix>_<site>[_...] into its batch identity parts.
func ParseSourceFileName(name string) (SourceFileDetail, error) {
	parts := strings.Split(strings.TrimSpace(name), "_")
	if len(parts) < 4 {
		return SourceFileDetail{}, pkgerrors.Newf(pkgerrors.CodeParse, "source file name %q has %d segments, want at least 4", name, len(parts))
	}

	seq, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return SourceFileDetail{}, pkgerrors.Wrap(err, pkgerrors.CodeParse, "source file sequence is not numeric")
	}

	date, err := time.Parse(sourceFileDateFormat, parts[1])
	if err != nil {
		return SourceFileDetail{}, pkgerrors.Wrap(err, pkgerrors.CodeParse, "source file date is not ddMMyyyy")
	}

	return SourceFileDetail{
		SequenceNumber: seq,
		DateOfHearing:  date,
		OUCode:         CourtCodeFromOU(parts[3]),
	}, nil
}
