package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"single name masked",
			`<case><def_name>David SMITH</def_name></case>`,
			`<case><def_name>***</def_name></case>`,
		},
		{
			"every occurrence masked",
			`<def_name>A ONE</def_name><case_no>1</case_no><def_name>B TWO</def_name>`,
			`<def_name>***</def_name><case_no>1</case_no><def_name>***</def_name>`,
		},
		{
			"attributes on the element survive",
			`<def_name type="full">David SMITH</def_name>`,
			`<def_name type="full">***</def_name>`,
		},
		{
			"empty element untouched content",
			`<def_name></def_name>`,
			`<def_name>***</def_name>`,
		},
		{
			"payload without names unchanged",
			`<case><case_no>1600032953</case_no></case>`,
			`<case><case_no>1600032953</case_no></case>`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Redact(tc.in))
		})
	}
}
