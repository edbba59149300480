package gateway

import (
	"errors"
	"strings"

	"fayclick/internal/domain"
)

// ErrInvalidPhone is returned for numbers that do not match the
// selected wallet's operator prefixes.
var ErrInvalidPhone = errors.New("invalid phone number for payment method")

// Operator prefixes on the Senegalese numbering plan. Orange Money only
// settles Orange numbers; Wave accepts any local mobile prefix.
var methodPrefixes = map[domain.PaymentMethod][]string{
	domain.MethodOM:   {"77", "78"},
	domain.MethodWave: {"70", "75", "76", "77", "78"},
}

// NormalizePhone strips spaces, dashes and an optional 221 country code,
// then validates the 9-digit local number against the method's prefixes.
func NormalizePhone(method domain.PaymentMethod, phone string) (string, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", ".", "").Replace(strings.TrimSpace(phone))
	cleaned = strings.TrimPrefix(cleaned, "+")
	cleaned = strings.TrimPrefix(cleaned, "221")

	if len(cleaned) != 9 || !digitsOnly(cleaned) {
		return "", ErrInvalidPhone
	}

	prefixes, ok := methodPrefixes[method]
	if !ok {
		return "", ErrInvalidPhone
	}
	for _, p := range prefixes {
		if strings.HasPrefix(cleaned, p) {
			return cleaned, nil
		}
	}
	return "", ErrInvalidPhone
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
