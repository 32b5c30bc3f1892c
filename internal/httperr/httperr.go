package httperr

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/rootbits-api/internal/logger"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Respond writes err as the JSON error envelope and aborts the chain.
// Anything that is not an *Error is logged and reported as internal.
func Respond(c *gin.Context, log *logger.Logger, err error) {
	e, ok := As(err)
	if !ok {
		e = Internal(err)
	}

	if e.Code == CodeInternal && log != nil {
		log.Error(c.Request.Context(), "request failed", err)
	}

	c.AbortWithStatusJSON(e.Status(), HTTPError{
		Code:    string(e.Code),
		Message: e.Message,
		Fields:  e.Fields,
	})
}
