package ticket

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/BruksfildServices01/rootbits-api/internal/domain/ticket"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/notification"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
	"github.com/BruksfildServices01/rootbits-api/internal/notify"
)

type AddComment struct {
	repo   domain.Repository
	notify Notifier
}

func NewAddComment(repo domain.Repository, n Notifier) *AddComment {
	return &AddComment{repo: repo, notify: n}
}

// Execute appends one comment. Each comment is its own insert, so concurrent
// comments on the same ticket are all kept.
func (uc *AddComment) Execute(ctx context.Context, ticketID, autorID, texto string) (*models.Ticket, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil, httperr.Validation("Texto do comentário obrigatório", map[string]string{"texto": "campo obrigatório"})
	}

	t, err := uc.repo.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.AddComment(ctx, &models.TicketComment{
		TicketID: t.ID,
		AutorID:  autorID,
		Texto:    texto,
	}); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Get(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	uc.notify.Fire(ctx, notification.TicketComentario, "Novo comentário",
		fmt.Sprintf("Comentário no chamado \"%s\".", updated.Titulo),
		notify.Options{
			Global:    true,
			Excluir:   autorID,
			Link:      link(updated.ID),
			CriadoPor: autorID,
		})

	return updated, nil
}
