package domain

import (
	"errors"
	"strings"
)

var ErrInvalidPostalCode = errors.New("postal code must have 8 digits")

// NormalizePostalCode strips the "-" separator ("86047-622") and checks for 8 digits.
func NormalizePostalCode(s string) (string, error) {
	code := strings.ReplaceAll(strings.TrimSpace(s), "-", "")

	if !IsPostalCode(code) {
		return "", ErrInvalidPostalCode
	}

	return code, nil
}

func IsPostalCode(s string) bool {
	if len(s) != 8 {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
