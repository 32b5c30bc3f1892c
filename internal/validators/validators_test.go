package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Nome  string `json:"nome" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"min=6"`
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	Setup()

	err := binding.Validator.ValidateStruct(&sample{Email: "nope", Senha: "123"})
	require.Error(t, err)

	fields, ok := FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "campo obrigatório", fields["nome"])
	assert.Equal(t, "email inválido", fields["email"])
	assert.Equal(t, "mínimo de 6 caracteres", fields["senha"])
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	_, ok := FieldErrors(assert.AnError)
	assert.False(t, ok)
}

func TestEmailHelpers(t *testing.T) {
	assert.Equal(t, "ana@x.com", NormalizeEmail("  Ana@X.com "))
	assert.True(t, IsEmail("ana@x.com"))
	assert.False(t, IsEmail("ana"))
	assert.False(t, IsEmail(""))
}
