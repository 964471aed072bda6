package v1

import (
	"net/http"

	"urswat-backend/internal/delivery/http/response"
	"urswat-backend/pkg/apperror"
	"urswat-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// bindError reports a request binding failure, enumerating per-field errors
// when the failure came from validation tags.
func bindError(c *gin.Context, err error) {
	if fields := validation.Describe(err); fields != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", fields)
		return
	}
	c.Error(apperror.BadRequest(err.Error()))
}
