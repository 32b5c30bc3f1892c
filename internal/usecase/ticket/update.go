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
	"github.com/BruksfildServices01/rootbits-api/internal/timezone"
)

// UpdateInput carries only the fields present in the request. An empty
// ResponsavelID clears the assignee.
type UpdateInput struct {
	ID            string
	Titulo        *string
	Descricao     *string
	Status        *string
	ResponsavelID *string
	Prioridade    *string
	Tipo          *string
	// Anexos are appended; the total stays within the attachment cap.
	Anexos  []media.Attachment
	ActorID string
}

type UpdateTicket struct {
	repo   domain.Repository
	notify Notifier
	audit  *audit.Dispatcher
}

func NewUpdateTicket(repo domain.Repository, n Notifier, a *audit.Dispatcher) *UpdateTicket {
	return &UpdateTicket{repo: repo, notify: n, audit: a}
}

func (uc *UpdateTicket) Execute(ctx context.Context, in UpdateInput) (*models.Ticket, error) {
	t, err := uc.repo.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if in.Titulo != nil {
		if v := strings.TrimSpace(*in.Titulo); v == "" {
			fields["titulo"] = "campo obrigatório"
		} else {
			t.Titulo = v
		}
	}
	if in.Descricao != nil {
		if v := strings.TrimSpace(*in.Descricao); v == "" {
			fields["descricao"] = "campo obrigatório"
		} else {
			t.Descricao = v
		}
	}
	if in.Status != nil && !domain.Valid(domain.Statuses, *in.Status) {
		fields["status"] = "valor inválido"
	}
	if in.Prioridade != nil {
		if !domain.Valid(domain.Prioridades, *in.Prioridade) {
			fields["prioridade"] = "valor inválido"
		} else {
			t.Prioridade = *in.Prioridade
		}
	}
	if in.Tipo != nil {
		if !domain.Valid(domain.Tipos, *in.Tipo) {
			fields["tipo"] = "valor inválido"
		} else {
			t.Tipo = *in.Tipo
		}
	}
	if len(fields) > 0 {
		return nil, httperr.Validation("Dados inválidos", fields)
	}

	var newAssignee string
	if in.ResponsavelID != nil {
		next := strings.TrimSpace(*in.ResponsavelID)
		prev := ""
		if t.ResponsavelID != nil {
			prev = *t.ResponsavelID
		}

		if next == "" {
			t.ResponsavelID = nil
		} else {
			if err := checkRefs(ctx, uc.repo, "", next); err != nil {
				return nil, err
			}
			t.ResponsavelID = &next
			if next != prev {
				newAssignee = next
			}
		}
		t.Responsavel = nil
	}

	resolved := false
	if in.Status != nil {
		resolved = domain.ApplyStatus(t, domain.Status(*in.Status), timezone.Now())
	}

	if room := domain.MaxAnexos - len(t.Anexos); room > 0 && len(in.Anexos) > 0 {
		t.Anexos = append(t.Anexos, toAttachments(in.Anexos, room)...)
	}

	if err := uc.repo.Save(ctx, t); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Get(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	if newAssignee != "" {
		uc.notify.Fire(ctx, notification.TicketAtribuido, "Chamado atribuído",
			fmt.Sprintf("Você foi atribuído ao chamado \"%s\".", updated.Titulo),
			notify.Options{
				Destinatarios: []string{newAssignee},
				Link:          link(updated.ID),
				CriadoPor:     in.ActorID,
			})
	}
	if resolved && updated.AbertoPorID != in.ActorID {
		uc.notify.Fire(ctx, notification.TicketResolvido, "Chamado resolvido",
			fmt.Sprintf("O chamado \"%s\" foi marcado como %s.", updated.Titulo, updated.Status),
			notify.Options{
				Destinatarios: []string{updated.AbertoPorID},
				Link:          link(updated.ID),
				CriadoPor:     in.ActorID,
			})
	}
	uc.notify.Fire(ctx, notification.TicketAtualizado, "Chamado atualizado",
		fmt.Sprintf("Chamado \"%s\" foi atualizado.", updated.Titulo),
		notify.Options{
			Global:    true,
			Link:      link(updated.ID),
			CriadoPor: in.ActorID,
		})

	return updated, nil
}
