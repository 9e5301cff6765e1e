package config

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	valid := []string{
		"example.com.",
		"www.example.com.",
		"*.example.com.",
		"_dmarc.example.com.",
		"xn--bcher-kva.example.com.",
		"a.b.c.d.e.example.com.",
		"my-host.example.com.",
		"host_1.example.com.",
		"1.0.168.192.in-addr.arpa.",
	}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []struct {
		name string
		want string
	}{
		{"example.com", "fully qualified"},
		{"www..example.com.", "empty label"},
		{"www.*.example.com.", "leftmost"},
		{"w*w.example.com.", "entire label"},
		{"-host.example.com.", "hyphen"},
		{"host-.example.com.", "hyphen"},
		{"ho st.example.com.", "invalid characters"},
		{strings.Repeat("a", 64) + ".example.com.", "label too long"},
		{strings.Repeat("abcd.", 51) + "com.", "too long"},
	}
	for _, tc := range invalid {
		err := ValidateName(tc.name)
		if err == nil {
			t.Errorf("ValidateName(%q) = nil, want error containing %q", tc.name, tc.want)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("ValidateName(%q) = %v, want error containing %q", tc.name, err, tc.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"hostmaster@example.com",
		"john.doe@example.com",
		"user+tag@example.com",
		"a_b-c@sub.example.com",
		"hostmaster@example.com.",
	}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}

	invalid := []struct {
		email string
		want  string
	}{
		{"hostmaster", "must contain '@'"},
		{"@example.com", "cannot be empty"},
		{"user@", "cannot be empty"},
		{"user@localhost", "at least one dot"},
		{".user@example.com", "start or end with '.'"},
		{"user.@example.com", "start or end with '.'"},
		{"us..er@example.com", "consecutive dots"},
		{"us er@example.com", "invalid characters"},
		{"user@exa mple.com", "invalid characters"},
		{"user@-example.com", "hyphen"},
		{"user@example.123", "all numeric"},
		{strings.Repeat("a", 65) + "@example.com", "local part too long"},
	}
	for _, tc := range invalid {
		err := ValidateEmail(tc.email)
		if err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error containing %q", tc.email, tc.want)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("ValidateEmail(%q) = %v, want error containing %q", tc.email, err, tc.want)
		}
	}
}
