package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+16714645623"))
	assert.True(t, ValidatePhone("(671) 464-5623"))
	assert.True(t, ValidatePhone("671-464-5623 "))
	assert.False(t, ValidatePhone("12345"))
	assert.False(t, ValidatePhone("not a phone"))
}

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+16714645623", "+16714645623"},
		{"16714645623", "+16714645623"},
		{"6714645623", "+16714645623"},
		{"(671) 464-5623", "+16714645623"},
		{"671.464.5623", "+16714645623"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPhone(tc.in), tc.in)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("patient@example.com"))
	assert.False(t, ValidateEmail("patient@"))
	assert.False(t, ValidateEmail("example.com"))
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "Maria", FormatName("mARIA"))
	assert.Equal(t, "Anna-Maria Smith", FormatName("anna-maria smith"))
	assert.Equal(t, "", FormatName(""))
}
