package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BlufyTeam/contacts/internal/entity"
)

const (
	EmailMaxLen    = 255
	PasswordMinLen = 6
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) error {
	if len(email) > EmailMaxLen {
		return fmt.Errorf("%w: email exceeds %d characters", entity.ErrInvalidInput, EmailMaxLen)
	}

	if !emailRegexp.MatchString(email) {
		return fmt.Errorf("%w: incorrect email format", entity.ErrInvalidInput)
	}

	if strings.Contains(email, "..") {
		return fmt.Errorf("%w: incorrect email format", entity.ErrInvalidInput)
	}

	return nil
}

func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", entity.ErrInvalidInput, field)
	}

	return nil
}

func ValidatePassword(password string) error {
	if len(password) < PasswordMinLen {
		return fmt.Errorf("%w: password must be at least %d characters", entity.ErrInvalidInput, PasswordMinLen)
	}

	return nil
}
