package ticket

import (
	"time"

	"github.com/BruksfildServices01/rootbits-api/internal/models"
)

// ===============================
// Enumerations
// ===============================

type Status string

const (
	StatusAberto            Status = "aberto"
	StatusEmAndamento       Status = "em_andamento"
	StatusAguardandoCliente Status = "aguardando_cliente"
	StatusResolvido         Status = "resolvido"
	StatusFechado           Status = "fechado"
	StatusCancelado         Status = "cancelado"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var Statuses = []Option{
	{string(StatusAberto), "Aberto"},
	{string(StatusEmAndamento), "Em Andamento"},
	{string(StatusAguardandoCliente), "Aguardando Cliente"},
	{string(StatusResolvido), "Resolvido"},
	{string(StatusFechado), "Fechado"},
	{string(StatusCancelado), "Cancelado"},
}

var Prioridades = []Option{
	{"baixa", "Baixa"},
	{"media", "Média"},
	{"alta", "Alta"},
	{"urgente", "Urgente"},
}

var Tipos = []Option{
	{"alteracao", "Alteração"},
	{"correcao", "Correção"},
	{"nova_funcionalidade", "Nova Funcionalidade"},
	{"suporte", "Suporte"},
	{"outro", "Outro"},
}

const (
	DefaultPrioridade = "media"
	DefaultTipo       = "alteracao"

	MaxAnexos = 5
)

func Valid(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// ===============================
// Resolution
// ===============================

// IsResolution reports whether s belongs to the resolvido/fechado pair.
func IsResolution(s Status) bool {
	return s == StatusResolvido || s == StatusFechado
}

// ApplyStatus moves t to next. The resolution timestamp is stamped only when
// the ticket enters the resolution pair from outside it; moving inside the
// pair or re-saving keeps the first stamp. It reports whether the ticket
// entered the pair.
func ApplyStatus(t *models.Ticket, next Status, now time.Time) bool {
	prev := Status(t.Status)
	t.Status = string(next)

	if IsResolution(next) && !IsResolution(prev) {
		t.DataResolucao = &now
		return true
	}
	return false
}
