package models

import (
	"encoding/json"
	"time"
)

// Notification is immutable once created; only its read set grows.
type Notification struct {
	Base

	Tipo     string `gorm:"size:30;not null;index" json:"tipo"`
	Titulo   string `gorm:"size:200;not null" json:"titulo"`
	Mensagem string `gorm:"type:text" json:"mensagem"`

	Global        bool                    `gorm:"column:is_global;not null;index" json:"global"`
	ExcluidoID    *string                 `gorm:"size:36" json:"-"`
	Destinatarios []NotificationRecipient `gorm:"foreignKey:NotificationID" json:"destinatarios"`

	Link        string         `gorm:"size:255" json:"link"`
	Dados       map[string]any `gorm:"serializer:json;type:text" json:"dados"`
	CriadoPorID *string        `gorm:"size:36" json:"criadoPorId"`
	CriadoPor   *UserRef       `gorm:"foreignKey:CriadoPorID" json:"criadoPor"`

	// Lida is computed per reader.
	Lida bool `gorm:"-" json:"lida"`
}

type NotificationRecipient struct {
	NotificationID string `gorm:"primaryKey;size:36"`
	UserID         string `gorm:"primaryKey;size:36;index"`
}

func (r NotificationRecipient) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.UserID)
}

type NotificationRead struct {
	NotificationID string    `gorm:"primaryKey;size:36"`
	UserID         string    `gorm:"primaryKey;size:36;index"`
	CreatedAt      time.Time `json:"createdAt"`
}
