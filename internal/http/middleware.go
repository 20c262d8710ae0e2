package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"exam-clearance/internal/auth"
	"exam-clearance/internal/domain"
)

const identityKey = "identity"

// requireToken reads the session token from the cookie, falling back to an
// Authorization bearer header, and stores the verified identity on the context.
func (h *Handler) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := h.tokenFrom(c)
		if raw == "" {
			h.abort(c, errMissingToken)
			return
		}

		id, err := h.tokens.Verify(raw)
		if err != nil {
			h.abort(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

func (h *Handler) requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identityFrom(c).Role != role {
			h.abort(c, errForbidden)
			return
		}
		c.Next()
	}
}

func (h *Handler) tokenFrom(c *gin.Context) string {
	if v, err := c.Cookie(h.opts.CookieName); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func identityFrom(c *gin.Context) auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}
	}
	id, _ := v.(auth.Identity)
	return id
}
