package analyticsController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/responses"
	"github.com/abhinandan-jain01/nearmart/services"
)

type Controller struct {
	analytics *services.AnalyticsService
}

func New(analytics *services.AnalyticsService) *Controller {
	return &Controller{analytics: analytics}
}

func (h *Controller) Dashboard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	dashboard, err := h.analytics.RetailerDashboard(ctx, userID)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "dashboard retrieved successfully", dashboard)
}

func (h *Controller) Overview(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	overview, err := h.analytics.PlatformOverview(ctx)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "overview retrieved successfully", overview)
}
