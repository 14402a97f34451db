package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palaver/internal/transport/httpdto"
	palaver_errors "palaver/pkg/errors"
)

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var status int
	var code string
	switch palaver_errors.KindOf(err) {
	case palaver_errors.KindUnauthenticated:
		status, code = http.StatusUnauthorized, "UNAUTHENTICATED"
	case palaver_errors.KindInvalidArgument:
		status, code = http.StatusBadRequest, "INVALID_ARGUMENT"
	case palaver_errors.KindNotFound:
		status, code = http.StatusNotFound, "NOT_FOUND"
	case palaver_errors.KindForbidden:
		status, code = http.StatusForbidden, "FORBIDDEN"
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", "INTERNAL"))
		return
	}
	c.JSON(status, httpdto.NewErrorResponse(err.Error(), code).WithFields(palaver_errors.FieldsOf(err)))
}
