// Package validator checks request shapes before they reach the use cases.
package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Raviram02/HostelBite/internal/domain/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidPhone = errors.New("invalid phone number")
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// digits with optional leading + and single spaces or dashes between groups
	phoneRe = regexp.MustCompile(`^\+?[0-9]+([ -]?[0-9]+)*$`)
)

// ValidateSellerLogin checks the login form. Credentials are compared later.
func ValidateSellerLogin(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrInvalidInput
	}
	if !emailRe.MatchString(email) {
		return ErrInvalidInput
	}
	return nil
}

// ValidateDeliveryAddress checks the fields a room delivery person relies on.
// Blank fields are left to the order rules.
func ValidateDeliveryAddress(a model.DeliveryAddress) error {
	phone := strings.TrimSpace(a.Phone)
	if phone == "" {
		return nil
	}
	if !phoneRe.MatchString(phone) {
		return ErrInvalidPhone
	}

	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 || digits > 15 {
		return ErrInvalidPhone
	}
	return nil
}
