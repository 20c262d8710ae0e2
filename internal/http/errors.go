package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"exam-clearance/internal/auth"
	"exam-clearance/internal/service"
)

var (
	errMissingToken = errors.New("no token")
	errForbidden    = errors.New("admin only")
)

// statusFor maps an error to the response status and the client-facing message.
// Anything unrecognised is a server error; its detail stays in the logs.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, errMissingToken):
		return http.StatusUnauthorized, "No token"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusForbidden, "Invalid token"
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, "Admin only"
	case errors.Is(err, service.ErrNoEnrollments):
		return http.StatusNotFound, "Data not found"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, msg := h.classify(c, err)
	c.JSON(status, gin.H{"msg": msg})
}

func (h *Handler) abort(c *gin.Context, err error) {
	status, msg := h.classify(c, err)
	c.AbortWithStatusJSON(status, gin.H{"msg": msg})
}

func (h *Handler) classify(c *gin.Context, err error) (int, string) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		}).WithError(err).Error("request failed")
	}
	_ = c.Error(err)
	return status, msg
}
