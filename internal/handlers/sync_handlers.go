package handlers

import (
	"log"
	"net/http"

	"resellerdesk/internal/caching"
	"resellerdesk/internal/common"
	"resellerdesk/internal/jobs"

	"github.com/labstack/echo/v4"
)

// SyncHandlers exposes the reseller synchronization jobs over HTTP
type SyncHandlers struct {
	sync     *jobs.ResellerSync
	cacheSvc caching.CacheService
}

func NewSyncHandlers(sync *jobs.ResellerSync, cacheSvc caching.CacheService) *SyncHandlers {
	return &SyncHandlers{
		sync:     sync,
		cacheSvc: cacheSvc,
	}
}

// SyncContacts runs a full customer and contact sync
func (h *SyncHandlers) SyncContacts(c echo.Context) error {
	ctx := c.Request().Context()

	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		log.Printf("Contact sync triggered by user %s", userID)
	}

	result := h.sync.SyncContacts(ctx)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Contact sync completed",
		"result":  result,
	})
}

// SyncSubscriptions runs a full subscription sync
func (h *SyncHandlers) SyncSubscriptions(c echo.Context) error {
	ctx := c.Request().Context()

	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		log.Printf("Subscription sync triggered by user %s", userID)
	}

	result := h.sync.SyncSubscriptions(ctx)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Subscription sync completed",
		"result":  result,
	})
}

// GetLastSyncResult returns the cached outcome of the most recent sync run.
// The kind path parameter selects contacts or subscriptions.
func (h *SyncHandlers) GetLastSyncResult(c echo.Context) error {
	ctx := c.Request().Context()

	kind := c.Param("kind")
	if kind != "contacts" && kind != "subscriptions" {
		return common.SendClientError(c, "kind must be contacts or subscriptions")
	}

	result, err := h.cacheSvc.GetLastSyncResult(ctx, kind)
	if err != nil {
		return common.SendNotFoundError(c, "Sync result")
	}

	return c.JSON(http.StatusOK, result)
}
