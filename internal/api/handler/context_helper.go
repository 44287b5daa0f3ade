package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

// MustGetCaller extracts the authenticated caller injected by the JWT
// middleware. On failure it writes a 401 and returns false; the handler
// should return immediately.
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	userID := c.GetString("user_id")
	role := c.GetString("role")
	if userID == "" || role == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return service.Caller{}, false
	}
	return service.Caller{
		UserID:           userID,
		Role:             role,
		MinistryID:       c.GetString("ministry_id"),
		MasterMinistryID: c.GetString("master_ministry_id"),
	}, true
}

// tokenInfo extracts the current token's ID and expiry, used by logout.
func tokenInfo(c *gin.Context) (jti string, expiresAt time.Time) {
	jti = c.GetString("token_jti")
	if v, ok := c.Get("token_expires_at"); ok {
		if t, ok := v.(time.Time); ok {
			expiresAt = t
		}
	}
	return jti, expiresAt
}
