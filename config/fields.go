package config

import (
	"fmt"
	"strings"
)

// MaxTTL is the largest value an SOA timer or TTL may take (RFC 2181).
const MaxTTL = 2147483647

func isAlnum(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// ValidateName checks a fully qualified DNS name: total length, label
// lengths, label characters, and wildcard placement.
func ValidateName(name string) error {
	if len(name) > 253 {
		return fmt.Errorf("DNS name too long (max 253 chars): %s", name)
	}
	if !strings.HasSuffix(name, ".") {
		return fmt.Errorf("host must be fully qualified: %s", name)
	}
	labels := strings.Split(strings.TrimSuffix(name, "."), ".")
	for i, label := range labels {
		if label == "" {
			return fmt.Errorf("DNS name has empty label: %s", name)
		}
		if len(label) > 63 {
			return fmt.Errorf("DNS label too long (max 63 chars): %s", label)
		}
		if strings.Contains(label, "*") {
			if i != 0 {
				return fmt.Errorf("wildcard '*' must be leftmost label, got: %s", name)
			}
			if label != "*" {
				return fmt.Errorf("wildcard '*' must be entire label, got: %s", label)
			}
			continue
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return fmt.Errorf("DNS label cannot start/end with hyphen: %s", label)
		}
		for _, c := range label {
			if !isAlnum(c) && c != '-' && c != '_' {
				return fmt.Errorf("DNS label has invalid characters: %s", label)
			}
		}
	}
	return nil
}

// ValidateEmail checks a plain user@domain address before it is turned
// into an SOA RNAME.
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email too long (max 254 chars): %s", email)
	}

	local, domain, found := strings.Cut(email, "@")
	if !found {
		return fmt.Errorf("email must contain '@', got: %s", email)
	}

	if local == "" {
		return fmt.Errorf("email local part (before @) cannot be empty")
	}
	if len(local) > 64 {
		return fmt.Errorf("email local part too long (max 64 chars): %s", local)
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return fmt.Errorf("email local part cannot start or end with '.': %s", local)
	}
	if strings.Contains(local, "..") {
		return fmt.Errorf("email local part cannot contain consecutive dots: %s", local)
	}
	for _, c := range local {
		if !isAlnum(c) && c != '.' && c != '+' && c != '-' && c != '_' {
			return fmt.Errorf("email local part contains invalid characters: %s", local)
		}
	}

	if domain == "" {
		return fmt.Errorf("email domain (after @) cannot be empty")
	}
	if !strings.Contains(domain, ".") {
		return fmt.Errorf("email domain must contain at least one dot (e.g., 'example.com'): %s", domain)
	}

	labels := strings.Split(strings.TrimSuffix(domain, "."), ".")
	for _, label := range labels {
		if label == "" {
			return fmt.Errorf("email domain cannot have empty labels: %s", domain)
		}
		if len(label) > 63 {
			return fmt.Errorf("email domain label too long (max 63 chars): %s", label)
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return fmt.Errorf("email domain label cannot start/end with hyphen: %s", label)
		}
		for _, c := range label {
			if !isAlnum(c) && c != '-' {
				return fmt.Errorf("email domain label contains invalid characters: %s", label)
			}
		}
	}

	tld := labels[len(labels)-1]
	allDigits := tld != ""
	for _, c := range tld {
		if c < '0' || c > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		return fmt.Errorf("email domain TLD cannot be all numeric: %s", tld)
	}

	return nil
}
