package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rootbits-api/internal/auth"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/httpresp"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/media"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
	"github.com/BruksfildServices01/rootbits-api/internal/timezone"
	"github.com/BruksfildServices01/rootbits-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.Tokens
	log    *logger.Logger
}

func NewAuthHandler(db *gorm.DB, tokens *auth.Tokens, log *logger.Logger) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

type UpdateMeRequest struct {
	Nome   *string         `json:"nome"`
	Avatar json.RawMessage `json:"avatar"`
}

type ChangePasswordRequest struct {
	SenhaAtual string `json:"senhaAtual" binding:"required"`
	NovaSenha  string `json:"novaSenha" binding:"required,min=6"`
}

// --------- Handlers ---------

// Login answers unknown email and wrong password alike. The inactive-account
// error is only reported once the password has been verified.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	err := h.db.WithContext(c.Request.Context()).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, h.log, httperr.New(httperr.CodeInvalidCredentials, ""))
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	ok, err := auth.CheckPassword(user.SenhaHash, req.Senha)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if !ok {
		httperr.Respond(c, h.log, httperr.New(httperr.CodeInvalidCredentials, ""))
		return
	}

	if !user.Ativo {
		httperr.Respond(c, h.log, httperr.New(httperr.CodeInactiveAccount, ""))
		return
	}

	now := timezone.Now()
	if err := h.db.WithContext(c.Request.Context()).
		Model(&user).
		UpdateColumn("ultimo_acesso", now).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	user.UltimoAcesso = &now

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"token":   token,
		"usuario": user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	httpresp.OK(c, currentUser(c))
}

// UpdateMe lets a user change their own name and avatar. Role, email and
// active flag are admin-only.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	user := currentUser(c)
	updates := map[string]any{}

	if req.Nome != nil {
		nome := strings.TrimSpace(*req.Nome)
		if nome == "" {
			httperr.Respond(c, h.log, httperr.Validation("", map[string]string{"nome": "campo obrigatório"}))
			return
		}
		updates["nome"] = nome
	}
	if avatar, set := avatarUpdate(req.Avatar); set {
		updates["avatar_data"] = avatar.Data
		updates["avatar_content_type"] = avatar.ContentType
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(user).
			Updates(updates).Error; err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
	}

	var fresh models.User
	if err := h.db.WithContext(c.Request.Context()).First(&fresh, "id = ?", user.ID).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, fresh)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	user := currentUser(c)

	ok, err := auth.CheckPassword(user.SenhaHash, req.SenhaAtual)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if !ok {
		httperr.Respond(c, h.log, httperr.New(httperr.CodeInvalidCredentials, "Senha atual incorreta"))
		return
	}

	hashed, err := auth.HashPassword(req.NovaSenha)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(user).
		Update("senha", hashed).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"mensagem": "Senha alterada com sucesso"})
}

// avatarUpdate interprets an optional avatar field: absent leaves it
// untouched, null clears it, a decodable image replaces it.
func avatarUpdate(raw json.RawMessage) (media.Image, bool) {
	if len(raw) == 0 {
		return media.Image{}, false
	}
	if string(raw) == "null" {
		return media.Image{}, true
	}
	img, ok := media.Decode(raw)
	return img, ok
}
