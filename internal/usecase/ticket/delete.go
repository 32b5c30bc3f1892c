package ticket

import (
	"context"

	"github.com/BruksfildServices01/rootbits-api/internal/audit"
	domain "github.com/BruksfildServices01/rootbits-api/internal/domain/ticket"
)

type DeleteTicket struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteTicket(repo domain.Repository, a *audit.Dispatcher) *DeleteTicket {
	return &DeleteTicket{repo: repo, audit: a}
}

func (uc *DeleteTicket) Execute(ctx context.Context, id, actorID string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "ticket_deleted",
		Entity:   "ticket",
		EntityID: id,
	})
	return nil
}
