// Package models holds the raw hearing-list document tree as delivered by the
// court administration feed. These types exist only for the duration of one
// feed-processing pass; the canonical persisted shape lives in cases/models.
package models

import (
	"encoding/xml"
	"strings"
	"time"
)

// DateFormat is the wire format for dates inside the document body.
const DateFormat = "2006-01-02"

// Date wraps time.Time with the feed's date encoding.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(DateFormat, raw)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

func (d Date) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	if d.IsZero() {
		return enc.EncodeElement("", start)
	}
	return enc.EncodeElement(d.Format(DateFormat), start)
}

// Document is the root of a parsed hearing-list feed.
type Document struct {
	XMLName xml.Name `xml:"document"`
	Info    Info     `xml:"info"`
	Job     Job      `xml:"job"`
}

// Info identifies the originating batch. SequenceNumber exists only to
// de-duplicate repeated deliveries of the same document and takes no part in
// document equality.
type Info struct {
	SequenceNumber int64  `xml:"sequence"`
	OUCode         string `xml:"ou_code"`
	DateOfHearing  Date   `xml:"date_of_hearing"`
	SourceFileName string `xml:"source_file_name"`
}

// Equal compares batch identity ignoring the sequence number.
func (i Info) Equal(other Info) bool {
	return i.OUCode == other.OUCode && i.DateOfHearing.Equal(other.DateOfHearing.Time)
}

// Job carries the session hierarchy for one batch.
type Job struct {
	Sessions []Session `xml:"sessions>session"`
}

// Session is one hearing sitting. CourtCode may be blank at session level, in
// which case the batch-level OU code applies (fallback, never override).
type Session struct {
	ID            int64   `xml:"s_id"`
	DateOfHearing Date    `xml:"date_of_hearing"`
	CourtCode     string  `xml:"court_code"`
	CourtName     string  `xml:"court_name"`
	CourtRoom     string  `xml:"court_room"`
	Start         string  `xml:"sstart"`
	End           string  `xml:"send"`
	Blocks        []Block `xml:"blocks>block"`
}

// SessionStartTime combines the session date and start-of-sitting time.
func (s Session) SessionStartTime() time.Time {
	if s.DateOfHearing.IsZero() {
		return time.Time{}
	}
	parsed, err := time.Parse("15:04", s.Start)
	if err != nil {
		return s.DateOfHearing.Time
	}
	d := s.DateOfHearing.Time
	return time.Date(d.Year(), d.Month(), d.Day(), parsed.Hour(), parsed.Minute(), 0, 0, d.Location())
}

// Block groups consecutive cases within a session.
type Block struct {
	ID    int64  `xml:"id"`
	Start string `xml:"bstart"`
	End   string `xml:"bend"`
	Desc  string `xml:"desc"`
	Cases []Case `xml:"cases>case"`
}

// DefendantType distinguishes person defendants from organisations.
type DefendantType string

const (
	DefendantTypePerson       DefendantType = "P"
	DefendantTypeOrganisation DefendantType = "O"
)

// Case is one listed defendant appearance.
type Case struct {
	CaseNo        string        `xml:"case_no"`
	Name          string        `xml:"def_name"`
	DateOfBirth   Date          `xml:"def_dob"`
	Sex           string        `xml:"def_sex"`
	Type          DefendantType `xml:"def_type"`
	Address       *Address      `xml:"def_addr"`
	Nationality1  string        `xml:"nationality_1"`
	Nationality2  string        `xml:"nationality_2"`
	ListNo        string        `xml:"list_no"`
	Offences      []Offence     `xml:"offences>offence"`
	PNCID         string        `xml:"pnc_id"`
	CRO           string        `xml:"cro_number"`
}

// Address is the defendant's listed address.
type Address struct {
	Line1    string `xml:"line1"`
	Line2    string `xml:"line2"`
	Line3    string `xml:"line3"`
	Line4    string `xml:"line4"`
	Line5    string `xml:"line5"`
	PostCode string `xml:"pcode"`
}

// Offence ordering is significant and carried by Sequence, not input order.
type Offence struct {
	Sequence int    `xml:"oseq"`
	Title    string `xml:"title"`
	Summary  string `xml:"sum"`
	Act      string `xml:"as"`
}
