package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rootbits-api/internal/domain/notification"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/httpresp"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
	"github.com/BruksfildServices01/rootbits-api/internal/notify"
	"github.com/BruksfildServices01/rootbits-api/internal/validators"
)

type ContactHandler struct {
	db     *gorm.DB
	notify *notify.Service
	log    *logger.Logger
}

func NewContactHandler(db *gorm.DB, n *notify.Service, log *logger.Logger) *ContactHandler {
	return &ContactHandler{db: db, notify: n, log: log}
}

type CreateContactRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Mensagem string `json:"mensagem"`
}

type UpdateContactRequest struct {
	Lido       *bool   `json:"lido"`
	Respondido *bool   `json:"respondido"`
	Observacao *string `json:"observacao"`
}

// ======================================================
// CREATE (public site form)
// ======================================================
func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	contact := models.Contact{
		Nome:     strings.TrimSpace(req.Nome),
		Email:    validators.NormalizeEmail(req.Email),
		Telefone: strings.TrimSpace(req.Telefone),
		Mensagem: strings.TrimSpace(req.Mensagem),
	}

	fields := map[string]string{}
	if contact.Nome == "" {
		fields["nome"] = "campo obrigatório"
	}
	if contact.Email == "" {
		fields["email"] = "campo obrigatório"
	} else if !validators.IsEmail(contact.Email) {
		fields["email"] = "email inválido"
	}
	if contact.Mensagem == "" {
		fields["mensagem"] = "campo obrigatório"
	}
	if len(fields) > 0 {
		httperr.Respond(c, h.log, httperr.Validation("Nome, email e mensagem obrigatórios", fields))
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&contact).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.notify.Fire(ctx, notification.ContatoNovo, "Novo contato pelo site",
		fmt.Sprintf("%s (%s) enviou uma mensagem.", contact.Nome, contact.Email),
		notify.Options{
			Global: true,
			Link:   "/contatos/" + contact.ID,
			Dados:  map[string]any{"contactId": contact.ID},
		})

	httpresp.Created(c, gin.H{
		"mensagem": "Mensagem enviada com sucesso. Entraremos em contato em breve.",
		"id":       contact.ID,
	})
}

// ======================================================
// LIST
// ======================================================
func (h *ContactHandler) List(c *gin.Context) {
	page := httpresp.ParsePage(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Contact{})
	if lido := queryBool(c, "lido"); lido != nil {
		q = q.Where("lido = ?", *lido)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var contacts []models.Contact
	if err := q.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&contacts).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, contacts, total, page)
}

func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.find(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, contact)
}

func (h *ContactHandler) Update(c *gin.Context) {
	var req UpdateContactRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ctx := c.Request.Context()

	contact, err := h.find(ctx, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	updates := map[string]any{}
	if req.Lido != nil {
		updates["lido"] = *req.Lido
	}
	if req.Respondido != nil {
		updates["respondido"] = *req.Respondido
	}
	if req.Observacao != nil {
		updates["observacao"] = strings.TrimSpace(*req.Observacao)
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(contact).Updates(updates).Error; err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
	}

	httpresp.OK(c, contact)
}

func (h *ContactHandler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()

	contact, err := h.find(ctx, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if !contact.Lido {
		if err := h.db.WithContext(ctx).Model(contact).Update("lido", true).Error; err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
	}

	httpresp.OK(c, contact)
}

func (h *ContactHandler) MarkAllRead(c *gin.Context) {
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.Contact{}).
		Where("lido = ?", false).
		Update("lido", true).Error
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"mensagem": "Todos marcados como lidos"})
}

func (h *ContactHandler) UnreadCount(c *gin.Context) {
	var count int64
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.Contact{}).
		Where("lido = ?", false).
		Count(&count).Error
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"count": count})
}

func (h *ContactHandler) find(ctx context.Context, id string) (*models.Contact, error) {
	var contact models.Contact
	err := h.db.WithContext(ctx).First(&contact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("Contato não encontrado")
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}
