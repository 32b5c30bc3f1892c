package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsEmail(email string) bool {
	return emailValidator.Var(email, "required,email") == nil
}
