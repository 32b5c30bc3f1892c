package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
)

// BodyError maps a failure to read the request body: bodies cut by BodyLimit
// become 413, anything else a validation error.
func BodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return httperr.New(httperr.CodePayloadTooLarge, "")
	}
	return httperr.Validation("Corpo da requisição inválido.", nil)
}

func respondBodyError(c *gin.Context, log *logger.Logger, err error) {
	httperr.Respond(c, log, BodyError(err))
}
