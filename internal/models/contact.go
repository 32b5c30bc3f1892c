package models

type Contact struct {
	Base

	Nome       string `gorm:"size:150;not null" json:"nome"`
	Email      string `gorm:"size:160;not null" json:"email"`
	Telefone   string `gorm:"size:30" json:"telefone"`
	Mensagem   string `gorm:"type:text;not null" json:"mensagem"`
	Lido       bool   `gorm:"not null;index" json:"lido"`
	Respondido bool   `gorm:"not null" json:"respondido"`
	Observacao string `gorm:"type:text" json:"observacao"`
}
