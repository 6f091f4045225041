package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "caseflow/pkg/errors"
)

const validPayload = `
<document>
  <info>
    <sequence>146</sequence>
    <ou_code>B01CX00</ou_code>
    <date_of_hearing>2026-08-28</date_of_hearing>
  </info>
  <job>
    <sessions>
      <session>
        <s_id>556</s_id>
        <date_of_hearing>2026-08-28</date_of_hearing>
        <court_room>Courtroom 05</court_room>
        <sstart>09:30</sstart>
        <send>13:00</send>
        <blocks>
          <block>
            <id>1</id>
            <cases>
              <case>
                <case_no>1600032953</case_no>
                <def_name>Mr. David ROBERT SMITH</def_name>
                <def_dob>1969-08-02</def_dob>
                <def_sex>M</def_sex>
                <def_type>P</def_type>
                <def_addr>
                  <line1>26 Elms Road</line1>
                  <line2>Croydon</line2>
                  <pcode>CR0 3RD</pcode>
                </def_addr>
                <nationality_1>British</nationality_1>
                <list_no>1st</list_no>
                <offences>
                  <offence>
                    <oseq>2</oseq>
                    <title>Theft from a shop</title>
                    <sum>On 01/01/2026 stole items</sum>
                    <as>Contrary to section 1 of the Theft Act 1968</as>
                  </offence>
                  <offence>
                    <oseq>1</oseq>
                    <title>Assault by beating</title>
                  </offence>
                </offences>
              </case>
            </cases>
          </block>
        </blocks>
      </session>
    </sessions>
  </job>
</document>`

func TestParse_ValidDocument(t *testing.T) {
	doc, err := New().Parse(validPayload)
	require.NoError(t, err)

	assert.Equal(t, int64(146), doc.Info.SequenceNumber)
	assert.Equal(t, "B01CX00", doc.Info.OUCode)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), doc.Info.DateOfHearing.Time)

	require.Len(t, doc.Job.Sessions, 1)
	session := doc.Job.Sessions[0]
	assert.Equal(t, int64(556), session.ID)
	// Session had no court code; batch OU code truncated to court code applies.
	assert.Equal(t, "B01CX", session.CourtCode)
	assert.Equal(t, "Courtroom 05", session.CourtRoom)

	require.Len(t, session.Blocks, 1)
	require.Len(t, session.Blocks[0].Cases, 1)
	c := session.Blocks[0].Cases[0]
	assert.Equal(t, "1600032953", c.CaseNo)
	assert.Equal(t, "Mr. David ROBERT SMITH", c.Name)
	require.NotNil(t, c.Address)
	assert.Equal(t, "CR0 3RD", c.Address.PostCode)
	require.Len(t, c.Offences, 2)
}

func TestParse_SessionCourtCodeNotOverridden(t *testing.T) {
	payload := `
<document>
  <info><sequence>1</sequence><ou_code>B01CX00</ou_code><date_of_hearing>2026-08-28</date_of_hearing></info>
  <job><sessions><session>
    <s_id>1</s_id>
    <date_of_hearing>2026-08-28</date_of_hearing>
    <court_code>B63AD</court_code>
  </session></sessions></job>
</document>`

	doc, err := New().Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, "B63AD", doc.Job.Sessions[0].CourtCode, "explicit session court code must win over the batch OU code")
}

func TestParse_InfoDerivedFromSourceFileName(t *testing.T) {
	payload := `
<document>
  <info><source_file_name>146_27082026_2578_B01CX00_ADULT_COURT_LIST_DAILY</source_file_name></info>
  <job><sessions><session>
    <s_id>1</s_id>
    <date_of_hearing>2026-08-27</date_of_hearing>
  </session></sessions></job>
</document>`

	doc, err := New().Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(146), doc.Info.SequenceNumber)
	assert.Equal(t, "B01CX", doc.Info.OUCode)
	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), doc.Info.DateOfHearing.Time)
}

func TestParse_MalformedPayloadIsParseError(t *testing.T) {
	_, err := New().Parse(`<document><info>`)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeParse, pkgerrors.CodeOf(err))
}

func TestParse_ValidationAggregatesEveryViolation(t *testing.T) {
	payload := `
<document>
  <info><sequence>1</sequence></info>
  <job><sessions><session>
    <blocks><block><cases>
      <case>
        <case_no> </case_no>
        <offences><offence><oseq>1</oseq><title></title></offence></offences>
      </case>
    </cases></block></blocks>
  </session></sessions></job>
</document>`

	_, err := New().Parse(payload)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))

	paths := make([]string, 0, len(vErr.Violations))
	for _, v := range vErr.Violations {
		paths = append(paths, v.Path)
	}
	assert.Contains(t, paths, "info.date_of_hearing")
	assert.Contains(t, paths, "info.ou_code")
	assert.Contains(t, paths, "job.sessions[0].s_id")
	assert.Contains(t, paths, "job.sessions[0].date_of_hearing")
	assert.Contains(t, paths, "job.sessions[0].court_code")
	assert.Contains(t, paths, "job.sessions[0].blocks[0].cases[0].case_no")
	assert.Contains(t, paths, "job.sessions[0].blocks[0].cases[0].offences[0].title")
}

func TestParse_UnknownElementsIgnored(t *testing.T) {
	payload := `
<document>
  <info>
    <sequence>1</sequence>
    <ou_code>B01CX00</ou_code>
    <date_of_hearing>2026-08-28</date_of_hearing>
    <shiny_new_field>whatever</shiny_new_field>
  </info>
  <job><sessions><session>
    <s_id>1</s_id>
    <date_of_hearing>2026-08-28</date_of_hearing>
    <future_extension><deep>value</deep></future_extension>
  </session></sessions></job>
</document>`

	_, err := New().Parse(payload)
	assert.NoError(t, err, "unknown fields must not reject the document")
}
