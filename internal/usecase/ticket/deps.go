package ticket

import (
	"context"

	"github.com/BruksfildServices01/rootbits-api/internal/domain/notification"
	"github.com/BruksfildServices01/rootbits-api/internal/notify"
)

// Notifier fires notifications after a ticket write. Failures are the
// notifier's concern and never reach the caller.
type Notifier interface {
	Fire(ctx context.Context, tipo notification.Type, titulo, mensagem string, opts notify.Options)
}

func link(id string) string {
	return "/chamados/" + id
}
