// Package bootstrap prepares a fresh database for first use.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/rootbits-api/internal/auth"
	"github.com/BruksfildServices01/rootbits-api/internal/config"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/access"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
	"github.com/BruksfildServices01/rootbits-api/internal/validators"
)

// ErrAdminExists is returned when the configured admin email is already taken.
var ErrAdminExists = errors.New("admin already exists")

// SeedAdmin creates the first admin account from cfg. It is idempotent:
// an existing account with the same email is left untouched.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg config.AdminConfig) (*models.User, error) {
	email := validators.NormalizeEmail(cfg.Email)
	nome := strings.TrimSpace(cfg.Nome)
	if email == "" || nome == "" || cfg.Senha == "" {
		return nil, fmt.Errorf("ADMIN_NOME, ADMIN_EMAIL and ADMIN_SENHA are required")
	}

	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, ErrAdminExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	hashed, err := auth.HashPassword(cfg.Senha)
	if err != nil {
		return nil, err
	}

	admin := models.User{
		Nome:      nome,
		Email:     email,
		SenhaHash: hashed,
		Role:      string(access.RoleAdmin),
		Ativo:     true,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return &admin, nil
}
