package service

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"employee-list/internal/apperror"
)

const maxNameLength = 255

func normalizeRequiredString(raw string, field string) (string, error) {
	value := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(value)
	if length < 1 || length > maxNameLength {
		return "", apperror.New(apperror.CodeValidation, fmt.Sprintf("%s length must be in range 1..%d", field, maxNameLength))
	}
	return value, nil
}

func normalizeOptionalString(raw string, field string, max int) (string, error) {
	value := strings.TrimSpace(raw)
	if utf8.RuneCountInString(value) > max {
		return "", apperror.New(apperror.CodeValidation, fmt.Sprintf("%s must not exceed %d characters", field, max))
	}
	return value, nil
}

// normalizeEmail accepts an empty value or a bare address without display name
func normalizeEmail(raw string, required bool) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		if required {
			return "", apperror.New(apperror.CodeValidation, "email address is required")
		}
		return "", nil
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || utf8.RuneCountInString(value) > maxNameLength {
		return "", apperror.New(apperror.CodeValidation, "invalid email address")
	}
	return value, nil
}
