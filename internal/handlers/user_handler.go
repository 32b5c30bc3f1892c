package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rootbits-api/internal/audit"
	"github.com/BruksfildServices01/rootbits-api/internal/auth"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/access"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/notification"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/httpresp"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/media"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
	"github.com/BruksfildServices01/rootbits-api/internal/notify"
	"github.com/BruksfildServices01/rootbits-api/internal/validators"
)

var errEmailTaken = httperr.Validation("Email já cadastrado", map[string]string{"email": "já cadastrado"})

type UserHandler struct {
	db     *gorm.DB
	notify *notify.Service
	audit  *audit.Dispatcher
	log    *logger.Logger
}

func NewUserHandler(db *gorm.DB, n *notify.Service, a *audit.Dispatcher, log *logger.Logger) *UserHandler {
	return &UserHandler{db: db, notify: n, audit: a, log: log}
}

type CreateUserRequest struct {
	Nome   string          `json:"nome" binding:"required"`
	Email  string          `json:"email" binding:"required,email"`
	Senha  string          `json:"senha" binding:"required,min=6"`
	Role   string          `json:"role"`
	Ativo  *bool           `json:"ativo"`
	Avatar json.RawMessage `json:"avatar"`
}

type UpdateUserRequest struct {
	Nome   *string         `json:"nome"`
	Email  *string         `json:"email" binding:"omitempty,email"`
	Role   *string         `json:"role"`
	Ativo  *bool           `json:"ativo"`
	Avatar json.RawMessage `json:"avatar"`
}

// ======================================================
// LIST
// ======================================================
func (h *UserHandler) List(c *gin.Context) {
	page := httpresp.ParsePage(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.User{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if ativo := queryBool(c, "ativo"); ativo != nil {
		q = q.Where("ativo = ?", *ativo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var users []models.User
	if err := q.
		Order("nome ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&users).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, users, total, page)
}

func (h *UserHandler) Roles(c *gin.Context) {
	httpresp.OK(c, gin.H{"roles": access.Roles()})
}

// ======================================================
// CREATE
// ======================================================
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ctx := c.Request.Context()

	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		httperr.Respond(c, h.log, httperr.Validation("", map[string]string{"nome": "campo obrigatório"}))
		return
	}

	role := access.DefaultRole
	if req.Role != "" {
		role = access.Role(req.Role)
		if !role.Valid() {
			httperr.Respond(c, h.log, httperr.Validation("", map[string]string{"role": "valor inválido"}))
			return
		}
	}

	email := validators.NormalizeEmail(req.Email)
	if err := h.ensureEmailFree(ctx, email, ""); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	hashed, err := auth.HashPassword(req.Senha)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	user := models.User{
		Nome:      nome,
		Email:     email,
		SenhaHash: hashed,
		Role:      string(role),
		Ativo:     req.Ativo == nil || *req.Ativo,
	}
	if img, ok := media.Decode(req.Avatar); ok {
		user.Avatar = img
	}

	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = errEmailTaken
		}
		httperr.Respond(c, h.log, err)
		return
	}

	h.notify.Fire(ctx, notification.UsuarioConvite, "Novo usuário",
		fmt.Sprintf("%s foi adicionado ao sistema.", user.Nome),
		notify.Options{Global: true, CriadoPor: actorID(c)})

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "user_created",
		Entity:   "user",
		EntityID: user.ID,
		Metadata: map[string]string{"email": user.Email, "role": user.Role},
	})

	httpresp.Created(c, user)
}

// ======================================================
// GET
// ======================================================
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.find(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, user)
}

// ======================================================
// UPDATE
// ======================================================
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ctx := c.Request.Context()

	user, err := h.find(ctx, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	updates := map[string]any{}

	if req.Nome != nil {
		nome := strings.TrimSpace(*req.Nome)
		if nome == "" {
			httperr.Respond(c, h.log, httperr.Validation("", map[string]string{"nome": "campo obrigatório"}))
			return
		}
		updates["nome"] = nome
	}
	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		if email != user.Email {
			if err := h.ensureEmailFree(ctx, email, user.ID); err != nil {
				httperr.Respond(c, h.log, err)
				return
			}
			updates["email"] = email
		}
	}
	if req.Role != nil {
		if !access.Role(*req.Role).Valid() {
			httperr.Respond(c, h.log, httperr.Validation("", map[string]string{"role": "valor inválido"}))
			return
		}
		updates["role"] = *req.Role
	}
	if req.Ativo != nil {
		updates["ativo"] = *req.Ativo
	}
	if avatar, set := avatarUpdate(req.Avatar); set {
		updates["avatar_data"] = avatar.Data
		updates["avatar_content_type"] = avatar.ContentType
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				err = errEmailTaken
			}
			httperr.Respond(c, h.log, err)
			return
		}

		changed := make([]string, 0, len(updates))
		for k := range updates {
			changed = append(changed, k)
		}
		h.audit.Dispatch(audit.Event{
			UserID:   actorID(c),
			Action:   "user_updated",
			Entity:   "user",
			EntityID: user.ID,
			Metadata: map[string]any{"fields": changed},
		})
	}

	fresh, err := h.find(ctx, user.ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, fresh)
}

// ======================================================
// DELETE
// ======================================================
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == actorID(c) {
		httperr.Respond(c, h.log, httperr.New(httperr.CodeSelfDeleteForbidden, ""))
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		httperr.Respond(c, h.log, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, h.log, httperr.NotFound("Usuário não encontrado"))
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   actorID(c),
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: id,
	})

	httpresp.NoContent(c)
}

func (h *UserHandler) find(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := h.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("Usuário não encontrado")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *UserHandler) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	q := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errEmailTaken
	}
	return nil
}
