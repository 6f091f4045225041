package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourtCodeFromOU(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"eight char site code truncated", "B01CX00", "B01CX"},
		{"already court length", "B01CX", "B01CX"},
		{"shorter than court length", "B01", "B01"},
		{"lowercase normalized", "b01cx00", "B01CX"},
		{"whitespace trimmed", "  B01CX00 ", "B01CX"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CourtCodeFromOU(tc.in))
		})
	}
}

func TestParseSourceFileName(t *testing.T) {
	detail, err := ParseSourceFileName("146_27082026_2578_B01CX00_ADULT_COURT_LIST_DAILY")
	require.NoError(t, err)
	assert.Equal(t, int64(146), detail.SequenceNumber)
	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), detail.DateOfHearing)
	assert.Equal(t, "B01CX", detail.OUCode)
}

func TestParseSourceFileName_Invalid(t *testing.T) {
	t.Run("too few segments", func(t *testing.T) {
		_, err := ParseSourceFileName("146_27082026")
		assert.Error(t, err)
	})
	t.Run("non numeric sequence", func(t *testing.T) {
		_, err := ParseSourceFileName("abc_27082026_2578_B01CX00")
		assert.Error(t, err)
	})
	t.Run("bad date", func(t *testing.T) {
		_, err := ParseSourceFileName("146_2026-08-27_2578_B01CX00")
		assert.Error(t, err)
	})
}
