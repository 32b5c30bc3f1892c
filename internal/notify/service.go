// Package notify persists in-app notifications and tracks per-user reads.
//
// A notification is addressed either to an explicit recipient set or
// globally. Global notifications store no recipient snapshot: they are
// relevant to every user that is active when the feed is read, except the
// optionally excluded user.
package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/rootbits-api/internal/domain/notification"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/metrics"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
)

const DefaultListLimit = 30

type Options struct {
	Destinatarios []string
	Global        bool
	// Excluir suppresses a global notification for one user, usually its author.
	Excluir   string
	Link      string
	Dados     map[string]any
	CriadoPor string
}

type Service struct {
	db      *gorm.DB
	log     *logger.Logger
	metrics *metrics.NotificationMetrics
}

func NewService(db *gorm.DB, log *logger.Logger, m *metrics.NotificationMetrics) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{db: db, log: log, metrics: m}
}

// Notify persists one notification. A non-global call without recipients is
// a no-op and returns nil, nil.
func (s *Service) Notify(
	ctx context.Context,
	tipo notification.Type,
	titulo string,
	mensagem string,
	opts Options,
) (*models.Notification, error) {

	recipients := dedupe(opts.Destinatarios)
	if !opts.Global && len(recipients) == 0 {
		return nil, nil
	}

	n := models.Notification{
		Tipo:     string(tipo),
		Titulo:   titulo,
		Mensagem: mensagem,
		Global:   opts.Global,
		Link:     opts.Link,
		Dados:    opts.Dados,
	}
	if opts.Global && opts.Excluir != "" {
		n.ExcluidoID = &opts.Excluir
	}
	if opts.CriadoPor != "" {
		n.CriadoPorID = &opts.CriadoPor
	}
	for _, id := range recipients {
		n.Destinatarios = append(n.Destinatarios, models.NotificationRecipient{UserID: id})
	}

	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		s.metrics.IncFailed(string(tipo))
		return nil, err
	}

	s.metrics.IncCreated(string(tipo))
	return &n, nil
}

// Fire is Notify for request handlers: the entity write has already
// succeeded, so a failure here is logged and dropped.
func (s *Service) Fire(
	ctx context.Context,
	tipo notification.Type,
	titulo string,
	mensagem string,
	opts Options,
) {
	if _, err := s.Notify(ctx, tipo, titulo, mensagem, opts); err != nil {
		logCtx := s.log.WithField(ctx, "tipo", string(tipo))
		s.log.Error(logCtx, "notify.failed", err)
	}
}

// ======================================================
// Read side
// ======================================================

type ListFilter struct {
	Lida   *bool
	Limit  int
	Offset int
}

func (s *Service) List(ctx context.Context, userID string, f ListFilter) ([]models.Notification, int64, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}

	q := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Scopes(relevantTo(userID))

	if f.Lida != nil {
		if *f.Lida {
			q = q.Where(readBy, userID)
		} else {
			q = q.Where(unreadBy, userID)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Notification
	if err := q.
		Preload("Destinatarios").
		Preload("CriadoPor").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	if err := s.fillRead(ctx, userID, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Scopes(relevantTo(userID)).
		Where(unreadBy, userID).
		Count(&count).Error
	return count, err
}

// MarkRead adds userID to the read set. Marking twice is not an error.
func (s *Service) MarkRead(ctx context.Context, notificationID, userID string) error {
	var n models.Notification
	err := s.db.WithContext(ctx).
		Scopes(relevantTo(userID)).
		Where("id = ?", notificationID).
		Select("id").
		First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound("Notificação não encontrada")
	}
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.NotificationRead{
			NotificationID: n.ID,
			UserID:         userID,
			CreatedAt:      time.Now(),
		}).Error
}

// MarkAllRead marks every relevant unread notification and returns how many
// were marked.
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	var ids []string
	if err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Scopes(relevantTo(userID)).
		Where(unreadBy, userID).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	now := time.Now()
	reads := make([]models.NotificationRead, 0, len(ids))
	for _, id := range ids {
		reads = append(reads, models.NotificationRead{NotificationID: id, UserID: userID, CreatedAt: now})
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&reads, 200)
	return res.RowsAffected, res.Error
}

func (s *Service) fillRead(ctx context.Context, userID string, items []models.Notification) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, 0, len(items))
	for _, n := range items {
		ids = append(ids, n.ID)
	}

	var read []string
	if err := s.db.WithContext(ctx).
		Model(&models.NotificationRead{}).
		Where("user_id = ? AND notification_id IN ?", userID, ids).
		Pluck("notification_id", &read).Error; err != nil {
		return err
	}

	seen := make(map[string]bool, len(read))
	for _, id := range read {
		seen[id] = true
	}
	for i := range items {
		items[i].Lida = seen[items[i].ID]
	}
	return nil
}

// ======================================================
// Scopes
// ======================================================

const (
	readBy = `(EXISTS (
		SELECT 1 FROM notification_reads nr
		WHERE nr.notification_id = notifications.id AND nr.user_id = ?
	))`
	unreadBy = `(NOT ` + readBy + `)`
)

// relevantTo keeps notifications addressed to userID explicitly, plus global
// ones when userID is currently active and not excluded.
func relevantTo(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(`(
			EXISTS (
				SELECT 1 FROM notification_recipients r
				WHERE r.notification_id = notifications.id AND r.user_id = ?
			) OR (
				notifications.is_global = ?
				AND (notifications.excluido_id IS NULL OR notifications.excluido_id <> ?)
				AND EXISTS (SELECT 1 FROM users u WHERE u.id = ? AND u.ativo = ?)
			)
		)`,
			userID, true, userID, userID, true,
		)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
