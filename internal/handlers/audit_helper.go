package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/middleware"
)

// writeAudit queues an audit event on behalf of the caller.
func writeAudit(
	d *audit.Dispatcher,
	c *gin.Context,
	action string,
	entity string,
	entityID string,
	meta map[string]any,
) {
	var userID *uint
	if claims := middleware.ClaimsFrom(c); claims != nil {
		id := claims.UserID
		userID = &id
	}

	d.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	})
}
