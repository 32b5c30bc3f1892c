package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/middleware"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
	"github.com/BruksfildServices01/rootbits-api/internal/validators"
)

// bindJSON decodes the body into dst and runs binding validation.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if fields, ok := validators.FieldErrors(err); ok {
			return httperr.Validation("Campos obrigatórios ausentes ou inválidos.", fields)
		}
		return middleware.BodyError(err)
	}
	return nil
}

func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

func actorID(c *gin.Context) string {
	if u := currentUser(c); u != nil {
		return u.ID
	}
	return ""
}

// queryBool returns nil when the parameter is absent or not a boolean.
func queryBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a LIKE pattern matching term literally. Use with
// ESCAPE '!'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
