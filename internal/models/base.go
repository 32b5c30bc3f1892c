package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// UserRef is the lightweight projection of a user used when preloading
// references from other entities.
type UserRef struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (UserRef) TableName() string { return "users" }

type ClientRef struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	NomeEmpresa string `json:"nomeEmpresa"`
}

func (ClientRef) TableName() string { return "clients" }
