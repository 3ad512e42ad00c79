package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"alice@example.org", true},
		{"a@b.c", true},
		{"first.last@sub.example.co.ke", true},
		{"", false},
		{"plainaddress", false},
		{"@example.org", false},
		{"alice@", false},
		{"alice@example", false},
		{"alice @example.org", false},
		{"alice@ex ample.org", false},
		{"alice@@example.org", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Email(tt.in), "Email(%q)", tt.in)
	}
}

func TestPasswordComplexity(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Passw0rd", true},
		{"password", false}, // no upper, no digit
		{"PASS1234", false}, // no lower
		{"Pw1", false},      // too short
		{"passw0rd", false}, // no upper
		{"Password", false}, // no digit
		{"Aa1bbbbb", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PasswordComplexity(tt.in), "PasswordComplexity(%q)", tt.in)
	}
}
