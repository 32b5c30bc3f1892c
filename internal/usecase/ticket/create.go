package ticket

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/rootbits-api/internal/audit"
	domain "github.com/BruksfildServices01/rootbits-api/internal/domain/ticket"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/notification"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/media"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
	"github.com/BruksfildServices01/rootbits-api/internal/notify"
)

type CreateInput struct {
	Titulo        string
	Descricao     string
	ClienteID     string
	ResponsavelID string
	Prioridade    string
	Tipo          string
	Anexos        []media.Attachment
	ActorID       string
}

type CreateTicket struct {
	repo   domain.Repository
	notify Notifier
	audit  *audit.Dispatcher
}

func NewCreateTicket(repo domain.Repository, n Notifier, a *audit.Dispatcher) *CreateTicket {
	return &CreateTicket{repo: repo, notify: n, audit: a}
}

func (uc *CreateTicket) Execute(ctx context.Context, in CreateInput) (*models.Ticket, error) {
	in.Titulo = strings.TrimSpace(in.Titulo)
	in.Descricao = strings.TrimSpace(in.Descricao)
	in.ClienteID = strings.TrimSpace(in.ClienteID)
	in.ResponsavelID = strings.TrimSpace(in.ResponsavelID)

	fields := map[string]string{}
	if in.Titulo == "" {
		fields["titulo"] = "campo obrigatório"
	}
	if in.Descricao == "" {
		fields["descricao"] = "campo obrigatório"
	}
	if in.ClienteID == "" {
		fields["cliente"] = "campo obrigatório"
	}
	if in.Prioridade == "" {
		in.Prioridade = domain.DefaultPrioridade
	} else if !domain.Valid(domain.Prioridades, in.Prioridade) {
		fields["prioridade"] = "valor inválido"
	}
	if in.Tipo == "" {
		in.Tipo = domain.DefaultTipo
	} else if !domain.Valid(domain.Tipos, in.Tipo) {
		fields["tipo"] = "valor inválido"
	}
	if len(fields) > 0 {
		return nil, httperr.Validation("Título, descrição e cliente obrigatórios", fields)
	}

	if err := checkRefs(ctx, uc.repo, in.ClienteID, in.ResponsavelID); err != nil {
		return nil, err
	}

	t := &models.Ticket{
		Titulo:      in.Titulo,
		Descricao:   in.Descricao,
		ClienteID:   in.ClienteID,
		AbertoPorID: in.ActorID,
		Status:      string(domain.StatusAberto),
		Prioridade:  in.Prioridade,
		Tipo:        in.Tipo,
		Anexos:      toAttachments(in.Anexos, domain.MaxAnexos),
	}
	if in.ResponsavelID != "" {
		t.ResponsavelID = &in.ResponsavelID
	}

	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	created, err := uc.repo.Get(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	clienteNome := "cliente"
	if created.Cliente != nil && created.Cliente.Nome != "" {
		clienteNome = created.Cliente.Nome
	}
	uc.notify.Fire(ctx, notification.TicketCriado, "Novo chamado",
		fmt.Sprintf("Chamado \"%s\" aberto para %s.", created.Titulo, clienteNome),
		notify.Options{
			Global:    true,
			Link:      link(created.ID),
			Dados:     map[string]any{"ticketId": created.ID, "clienteId": created.ClienteID},
			CriadoPor: in.ActorID,
		})
	if created.ResponsavelID != nil {
		uc.notify.Fire(ctx, notification.TicketAtribuido, "Chamado atribuído",
			fmt.Sprintf("Você foi atribuído ao chamado \"%s\".", created.Titulo),
			notify.Options{
				Destinatarios: []string{*created.ResponsavelID},
				Link:          link(created.ID),
				CriadoPor:     in.ActorID,
			})
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "ticket_created",
		Entity:   "ticket",
		EntityID: created.ID,
	})

	return created, nil
}

func checkRefs(ctx context.Context, repo domain.Repository, clienteID, responsavelID string) error {
	fields := map[string]string{}

	if clienteID != "" {
		ok, err := repo.ClientExists(ctx, clienteID)
		if err != nil {
			return err
		}
		if !ok {
			fields["cliente"] = "cliente não encontrado"
		}
	}
	if responsavelID != "" {
		ok, err := repo.UserExists(ctx, responsavelID)
		if err != nil {
			return err
		}
		if !ok {
			fields["responsavel"] = "usuário não encontrado"
		}
	}

	if len(fields) > 0 {
		return httperr.Validation("Referência inválida", fields)
	}
	return nil
}

func toAttachments(in []media.Attachment, max int) []models.TicketAttachment {
	if len(in) > max {
		in = in[:max]
	}
	out := make([]models.TicketAttachment, 0, len(in))
	for _, a := range in {
		out = append(out, models.TicketAttachment{Filename: a.Filename, Arquivo: a.Image})
	}
	return out
}
