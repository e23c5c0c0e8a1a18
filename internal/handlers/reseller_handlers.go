package handlers

import (
	"net/http"
	"strconv"

	"resellerdesk/internal/common"
	"resellerdesk/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ResellerHandlers serves the synced reseller data
type ResellerHandlers struct {
	resellerRepo     repositories.ResellerPartnerRepository
	partnerRepo      repositories.PartnerRepository
	subscriptionRepo repositories.SubscriptionRepository
}

func NewResellerHandlers(
	resellerRepo repositories.ResellerPartnerRepository,
	partnerRepo repositories.PartnerRepository,
	subscriptionRepo repositories.SubscriptionRepository,
) *ResellerHandlers {
	return &ResellerHandlers{
		resellerRepo:     resellerRepo,
		partnerRepo:      partnerRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

func parsePagination(c echo.Context) (int, int) {
	limit := 50
	offset := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}

// ListResellerPartners handler
func (h *ResellerHandlers) ListResellerPartners(c echo.Context) error {
	ctx := c.Request().Context()
	limit, offset := parsePagination(c)

	partners, err := h.resellerRepo.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list reseller partners")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"reseller_partners": partners,
		"count":             len(partners),
	})
}

// GetResellerPartner handler
func (h *ResellerHandlers) GetResellerPartner(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendClientError(c, "Invalid reseller partner ID")
	}

	partner, err := h.resellerRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return common.SendNotFoundError(c, "Reseller partner")
		}
		return common.SendServerError(c, "Failed to get reseller partner")
	}

	return c.JSON(http.StatusOK, partner)
}

// ListPartners handler
func (h *ResellerHandlers) ListPartners(c echo.Context) error {
	ctx := c.Request().Context()
	limit, offset := parsePagination(c)

	partners, err := h.partnerRepo.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list partners")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"partners": partners,
		"count":    len(partners),
	})
}

// ListSubscriptions handler
func (h *ResellerHandlers) ListSubscriptions(c echo.Context) error {
	ctx := c.Request().Context()
	limit, offset := parsePagination(c)

	subscriptions, err := h.subscriptionRepo.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list subscriptions")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"subscriptions": subscriptions,
		"count":         len(subscriptions),
	})
}
