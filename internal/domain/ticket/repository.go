package ticket

import (
	"context"

	"github.com/BruksfildServices01/rootbits-api/internal/models"
)

type Filter struct {
	Status        string
	ClienteID     string
	ResponsavelID string
	Prioridade    string
}

type Repository interface {
	// -------- References --------
	ClientExists(ctx context.Context, id string) (bool, error)
	UserExists(ctx context.Context, id string) (bool, error)

	// -------- Ticket --------
	Create(ctx context.Context, t *models.Ticket) error
	// Get loads the ticket with references, comments and attachment payloads.
	Get(ctx context.Context, id string) (*models.Ticket, error)
	// Save writes the ticket columns and inserts attachments that have no id yet.
	Save(ctx context.Context, t *models.Ticket) error
	Delete(ctx context.Context, id string) error
	// List omits attachment payloads and comments.
	List(ctx context.Context, f Filter, limit, offset int) ([]models.Ticket, int64, error)

	// -------- Comments --------
	AddComment(ctx context.Context, c *models.TicketComment) error
}
