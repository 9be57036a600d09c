package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kusanyiko/internal/services"
)

// currentRequester reads the authenticated identity placed on the context by
// the JWT middleware.
func currentRequester(c *gin.Context) (services.Requester, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		return services.Requester{}, false
	}
	return services.Requester{
		AccountID: id,
		Role:      c.GetString("Role"),
	}, true
}

func requestMeta(c *gin.Context) services.RequestMeta {
	return services.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
