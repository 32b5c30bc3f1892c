package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Endereco struct {
	Logradouro  string `gorm:"size:200" json:"logradouro"`
	Numero      string `gorm:"size:20" json:"numero"`
	Complemento string `gorm:"size:100" json:"complemento"`
	Bairro      string `gorm:"size:100" json:"bairro"`
	Cidade      string `gorm:"size:100" json:"cidade"`
	Estado      string `gorm:"size:2" json:"estado"`
	CEP         string `gorm:"column:cep;size:10" json:"cep"`
}

type Client struct {
	Base

	// contato
	Nome      string `gorm:"size:150;not null" json:"nome"`
	Email     string `gorm:"size:160;not null;index" json:"email"`
	Telefone  string `gorm:"size:30" json:"telefone"`
	Telefone2 string `gorm:"size:30" json:"telefone2"`
	Celular   string `gorm:"size:30" json:"celular"`
	WhatsApp  string `gorm:"column:whatsapp;size:30" json:"whatsapp"`
	Cargo     string `gorm:"size:100" json:"cargo"`

	// empresa
	NomeEmpresa   string `gorm:"size:150" json:"nomeEmpresa"`
	RazaoSocial   string `gorm:"size:200" json:"razaoSocial"`
	CNPJ          string `gorm:"column:cnpj;size:20" json:"cnpj"`
	RamoAtividade string `gorm:"size:100" json:"ramoAtividade"`

	TipoSite              string `gorm:"size:20;not null" json:"tipoSite"`
	InformacoesAdicionais string `gorm:"type:text" json:"informacoesAdicionais"`

	// comercial
	Preco              decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"preco"`
	PrecoPago          decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"precoPago"`
	ValorEntrada       decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"valorEntrada"`
	ValorParcelas      decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"valorParcelas"`
	FormaPagamento     string              `gorm:"size:20" json:"formaPagamento"`
	QuantidadeParcelas *int                `json:"quantidadeParcelas"`

	// site
	URLSite    string `gorm:"column:url_site;size:255" json:"urlSite"`
	Dominio    string `gorm:"size:255" json:"dominio"`
	Hospedagem string `gorm:"size:255" json:"hospedagem"`

	// pipeline
	Status        string `gorm:"size:20;not null;index" json:"status"`
	Etapa         string `gorm:"size:100" json:"etapa"`
	Probabilidade *int   `json:"probabilidade"`
	OrigemLead    string `gorm:"size:20;index" json:"origemLead"`

	DataContrato        *time.Time `json:"dataContrato"`
	DataProposta        *time.Time `json:"dataProposta"`
	DataFechamento      *time.Time `json:"dataFechamento"`
	DataEntregaPrevista *time.Time `json:"dataEntregaPrevista"`
	DataPrimeiroContato *time.Time `json:"dataPrimeiroContato"`

	VendedorID    *string  `gorm:"size:36;index" json:"vendedorId"`
	Vendedor      *UserRef `gorm:"foreignKey:VendedorID" json:"vendedor"`
	ResponsavelID *string  `gorm:"size:36;index" json:"responsavelId"`
	Responsavel   *UserRef `gorm:"foreignKey:ResponsavelID" json:"responsavel"`

	Endereco Endereco `gorm:"embedded;embeddedPrefix:endereco_" json:"endereco"`

	Observacoes         string `gorm:"type:text" json:"observacoes"`
	ObservacoesInternas string `gorm:"type:text" json:"observacoesInternas"`
}
