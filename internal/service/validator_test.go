package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BlufyTeam/contacts/internal/service"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		errFn require.ErrorAssertionFunc
	}{
		{"Valid email", "user@example.com", require.NoError},
		{"Valid email with plus tag", "user+tag@example.com", require.NoError},
		{"Valid email with subdomain", "user@mail.example.com", require.NoError},
		{"Invalid: no domain zone", "abc@mail", require.Error},
		{"Invalid: double @ symbol", "user@@example.com", require.Error},
		{"Invalid: two consecutive dots", "user..name@example.com", require.Error},
		{"Invalid: exceeds length limit", strings.Repeat("x", service.EmailMaxLen) + "@example.com", require.Error},
		{"Invalid: empty email", "", require.Error},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidateEmail(test.email)
			test.errFn(t, err)
		})
	}
}

func TestValidateRequired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		errFn require.ErrorAssertionFunc
	}{
		{"Non-empty value", "Acme", require.NoError},
		{"Empty value", "", require.Error},
		{"Whitespace only", "   ", require.Error},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidateRequired("name", test.value)
			test.errFn(t, err)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		errFn    require.ErrorAssertionFunc
	}{
		{"Long enough", "secret", require.NoError},
		{"Too short", "abc", require.Error},
		{"Empty", "", require.Error},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidatePassword(test.password)
			test.errFn(t, err)
		})
	}
}
