package sanitize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain text untouched", input: "Hovedleilighet", expected: "Hovedleilighet"},
		{name: "angle brackets stripped", input: "<b>flyttevask</b>", expected: "bflyttevask/b"},
		{name: "script protocol removed", input: "javascript:alert(1)", expected: "alert(1)"},
		{name: "event handler removed", input: "onclick=evil", expected: "evil"},
		{name: "surrounding whitespace trimmed", input: "  vask  ", expected: "vask"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.input))
		})
	}
}

func TestText_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 5000)

	assert.Len(t, Text(long), 1000)
	assert.Len(t, Address(long), 500)
	assert.Len(t, Notes(long), 2000)
}

func TestText_CapKeepsRuneBoundary(t *testing.T) {
	// "ø" is two bytes; 999 ASCII bytes put it astride the 1000-byte cap.
	input := strings.Repeat("a", 999) + "øvrig"

	capped := Text(input)
	assert.True(t, utf8.ValidString(capped))
	assert.Equal(t, strings.Repeat("a", 999), capped)

	allMultiByte := strings.Repeat("æ", 600)
	capped = Text(allMultiByte)
	assert.True(t, utf8.ValidString(capped))
	assert.Len(t, capped, 1000)
}

func TestEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		valid    bool
	}{
		{input: "Kari.Nordmann@Example.COM", expected: "kari.nordmann@example.com", valid: true},
		{input: "  ola@renhold.no  ", expected: "ola@renhold.no", valid: true},
		{input: "not-an-email", valid: false},
		{input: "missing@tld", valid: false},
		{input: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Email(tt.input)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "+47 912 34 567", expected: "+4791234567"},
		{input: "912-34-567", expected: "91234567"},
		{input: "91+23+45", expected: "912345"},
		{input: "abc", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Phone(tt.input))
		})
	}
}

func TestTimeOfDay(t *testing.T) {
	assert.True(t, TimeOfDay("09:30"))
	assert.True(t, TimeOfDay("23:59"))
	assert.True(t, TimeOfDay("8:00"))
	assert.False(t, TimeOfDay("24:00"))
	assert.False(t, TimeOfDay("12:60"))
	assert.False(t, TimeOfDay("noon"))
}

func TestDate(t *testing.T) {
	assert.True(t, Date("2025-06-15"))
	assert.False(t, Date("2025-13-01"))
	assert.False(t, Date("15.06.2025"))
}
