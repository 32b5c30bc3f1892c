package models

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/rootbits-api/internal/media"
)

type Ticket struct {
	Base

	Titulo    string `gorm:"size:200;not null" json:"titulo"`
	Descricao string `gorm:"type:text;not null" json:"descricao"`

	ClienteID     string     `gorm:"size:36;not null;index" json:"clienteId"`
	Cliente       *ClientRef `gorm:"foreignKey:ClienteID" json:"cliente"`
	ResponsavelID *string    `gorm:"size:36;index" json:"responsavelId"`
	Responsavel   *UserRef   `gorm:"foreignKey:ResponsavelID" json:"responsavel"`
	AbertoPorID   string     `gorm:"size:36;not null" json:"abertoPorId"`
	AbertoPor     *UserRef   `gorm:"foreignKey:AbertoPorID" json:"abertoPor"`

	Status     string `gorm:"size:30;not null;index" json:"status"`
	Prioridade string `gorm:"size:20;not null;index" json:"prioridade"`
	Tipo       string `gorm:"size:30;not null" json:"tipo"`

	DataResolucao *time.Time `json:"dataResolucao"`

	Comentarios []TicketComment    `gorm:"foreignKey:TicketID" json:"comentarios"`
	Anexos      []TicketAttachment `gorm:"foreignKey:TicketID" json:"anexos"`
}

// TicketComment is append-only.
type TicketComment struct {
	Base

	TicketID string   `gorm:"size:36;not null;index" json:"-"`
	AutorID  string   `gorm:"size:36;not null" json:"autorId"`
	Autor    *UserRef `gorm:"foreignKey:AutorID" json:"autor"`
	Texto    string   `gorm:"type:text;not null" json:"texto"`
}

type TicketAttachment struct {
	Base

	TicketID string      `gorm:"size:36;not null;index"`
	Posicao  int         `gorm:"not null"`
	Filename string      `gorm:"size:255"`
	Arquivo  media.Image `gorm:"embedded;embeddedPrefix:arquivo_"`
}

// MarshalJSON exposes the payload as a data URL. Attachments loaded without
// their bytes (ticket listings) carry metadata only.
func (a TicketAttachment) MarshalJSON() ([]byte, error) {
	out := struct {
		ID          string `json:"id"`
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
		DataURL     string `json:"dataUrl,omitempty"`
	}{
		ID:          a.ID,
		Filename:    a.Filename,
		ContentType: a.Arquivo.ContentType,
	}
	if s, ok := media.Encode(a.Arquivo); ok {
		out.DataURL = s
	}
	return json.Marshal(out)
}
