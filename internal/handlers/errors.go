package handlers

import (
	"net/http"

	"quizmaster-service/internal/errs"
	"quizmaster-service/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto an HTTP status. Anything without a
// known kind is treated as an internal failure.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindForbidden:
		status = http.StatusForbidden
	case errs.KindConflict:
		status = http.StatusConflict
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindGeneration, errs.KindTransport:
		status = http.StatusBadGateway
	}
	utils.ErrorResponse(c, status, errs.MessageOf(err), err)
}

func callerID(c *gin.Context) string {
	return c.GetString("userID")
}
