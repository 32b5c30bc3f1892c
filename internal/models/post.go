package models

import (
	"github.com/BruksfildServices01/rootbits-api/internal/media"
)

type Post struct {
	Base

	Titulo    string `gorm:"size:200;not null" json:"titulo"`
	Descricao string `gorm:"type:text;not null" json:"descricao"`

	ImagemPrincipal   media.Image `gorm:"embedded;embeddedPrefix:imagem_principal_" json:"imagemPrincipal"`
	ImagensAdicionais []PostImage `gorm:"foreignKey:PostID" json:"imagensAdicionais"`

	AutorID string   `gorm:"size:36;not null" json:"autorId"`
	Autor   *UserRef `gorm:"foreignKey:AutorID" json:"autor"`

	Publicado bool     `gorm:"not null;index" json:"publicado"`
	Ordem     int      `gorm:"not null;default:0" json:"ordem"`
	Tags      []string `gorm:"serializer:json;type:text" json:"tags"`

	ClienteRefID *string    `gorm:"size:36" json:"clienteRefId"`
	ClienteRef   *ClientRef `gorm:"foreignKey:ClienteRefID" json:"clienteRef"`
}

type PostImage struct {
	Base

	PostID  string      `gorm:"size:36;not null;index"`
	Posicao int         `gorm:"not null"`
	Imagem  media.Image `gorm:"embedded;embeddedPrefix:imagem_"`
}

func (p PostImage) MarshalJSON() ([]byte, error) {
	return p.Imagem.MarshalJSON()
}
