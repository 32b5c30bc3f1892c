package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/rootbits-api/internal/domain/ticket"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
)

var _ domain.Repository = (*TicketGormRepository)(nil)

type TicketGormRepository struct {
	db *gorm.DB
}

func NewTicketGormRepository(db *gorm.DB) *TicketGormRepository {
	return &TicketGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *TicketGormRepository) ClientExists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &models.Client{}, id)
}

func (r *TicketGormRepository) UserExists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, &models.User{}, id)
}

func exists(ctx context.Context, db *gorm.DB, model any, id string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Ticket
// --------------------------------------------------

func (r *TicketGormRepository) Create(ctx context.Context, t *models.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return err
		}
		return insertAttachments(tx, t)
	})
}

func (r *TicketGormRepository) Get(ctx context.Context, id string) (*models.Ticket, error) {
	var t models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Responsavel").
		Preload("AbertoPor").
		Preload("Comentarios", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comentarios.Autor").
		Preload("Anexos", func(db *gorm.DB) *gorm.DB {
			return db.Order("posicao ASC")
		}).
		First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("Chamado não encontrado")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketGormRepository) Save(ctx context.Context, t *models.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(t).
			Select("titulo", "descricao", "responsavel_id", "status", "prioridade", "tipo", "data_resolucao", "updated_at").
			Updates(t).Error; err != nil {
			return err
		}
		return insertAttachments(tx, t)
	})
}

func (r *TicketGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Ticket{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.NotFound("Chamado não encontrado")
		}
		if err := tx.Delete(&models.TicketComment{}, "ticket_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TicketAttachment{}, "ticket_id = ?", id).Error
	})
}

func (r *TicketGormRepository) List(
	ctx context.Context,
	f domain.Filter,
	limit int,
	offset int,
) ([]models.Ticket, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Ticket{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClienteID != "" {
		q = q.Where("cliente_id = ?", f.ClienteID)
	}
	if f.ResponsavelID != "" {
		q = q.Where("responsavel_id = ?", f.ResponsavelID)
	}
	if f.Prioridade != "" {
		q = q.Where("prioridade = ?", f.Prioridade)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []models.Ticket
	err := q.
		Preload("Cliente").
		Preload("Responsavel").
		Preload("AbertoPor").
		Preload("Anexos", func(db *gorm.DB) *gorm.DB {
			return db.
				Select("id", "ticket_id", "posicao", "filename", "arquivo_content_type").
				Order("posicao ASC")
		}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tickets).Error
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// --------------------------------------------------
// Comments
// --------------------------------------------------

func (r *TicketGormRepository) AddComment(ctx context.Context, c *models.TicketComment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func insertAttachments(tx *gorm.DB, t *models.Ticket) error {
	for i := range t.Anexos {
		a := &t.Anexos[i]
		if a.ID != "" {
			continue
		}
		a.TicketID = t.ID
		a.Posicao = i
		if err := tx.Create(a).Error; err != nil {
			return err
		}
	}
	return nil
}
