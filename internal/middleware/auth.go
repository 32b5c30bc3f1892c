package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rootbits-api/internal/auth"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/access"
	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
)

const (
	ContextUser      = "currentUser"
	ContextRequestID = "requestID"
)

// Gate resolves bearer tokens to users. The user is re-read on every request,
// so role changes and deactivation apply to tokens already issued.
type Gate struct {
	db     *gorm.DB
	tokens *auth.Tokens
	log    *logger.Logger
}

func NewGate(db *gorm.DB, tokens *auth.Tokens, log *logger.Logger) *Gate {
	return &Gate{db: db, tokens: tokens, log: log}
}

// Auth requires a valid token of an active user.
func (g *Gate) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := g.resolve(c)
		if err != nil {
			httperr.Respond(c, g.log, err)
			return
		}

		g.attach(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a usable token is present and never
// rejects the request.
func (g *Gate) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := g.resolve(c); err == nil {
			g.attach(c, user)
		}
		c.Next()
	}
}

// RequireRole must run after Auth. It consults the permission table for op.
func RequireRole(op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			httperr.Respond(c, nil, httperr.New(httperr.CodeUnauthenticated, ""))
			return
		}
		if !access.Allowed(op, access.Role(user.Role)) {
			httperr.Respond(c, nil, httperr.New(httperr.CodeForbidden, ""))
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func (g *Gate) resolve(c *gin.Context) (*models.User, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, httperr.New(httperr.CodeUnauthenticated, "Token não fornecido.")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, httperr.New(httperr.CodeUnauthenticated, "Token mal formatado.")
	}

	userID, err := g.tokens.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, httperr.New(httperr.CodeUnauthenticated, "Token inválido ou expirado.")
	}

	var user models.User
	err = g.db.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.New(httperr.CodeUnauthenticated, "Usuário não encontrado.")
	}
	if err != nil {
		return nil, httperr.Internal(err)
	}

	if !user.Ativo {
		return nil, httperr.New(httperr.CodeInactiveAccount, "")
	}
	return &user, nil
}

func (g *Gate) attach(c *gin.Context, user *models.User) {
	c.Set(ContextUser, user)
	if g.log != nil {
		ctx := g.log.WithUserID(c.Request.Context(), user.ID)
		ctx = g.log.WithActorRole(ctx, user.Role)
		c.Request = c.Request.WithContext(ctx)
	}
}
