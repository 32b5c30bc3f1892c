package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/rootbits-api/internal/domain/access"
	"github.com/BruksfildServices01/rootbits-api/internal/media"
)

type User struct {
	Base

	Nome      string      `gorm:"size:120;not null" json:"nome"`
	Email     string      `gorm:"size:160;uniqueIndex;not null" json:"email"`
	SenhaHash string      `gorm:"column:senha;size:255;not null" json:"-"`
	Role      string      `gorm:"size:20;not null;index" json:"role"`
	Nivel     int         `gorm:"-" json:"nivel"`
	Ativo     bool        `gorm:"not null" json:"ativo"`
	Avatar    media.Image `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`

	UltimoAcesso *time.Time `json:"ultimoAcesso"`
}

func (u *User) AfterFind(*gorm.DB) error {
	u.Nivel = access.Role(u.Role).Level()
	return nil
}

func (u *User) AfterSave(*gorm.DB) error {
	u.Nivel = access.Role(u.Role).Level()
	return nil
}
