package storesController

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/models"
	"github.com/abhinandan-jain01/nearmart/responses"
	"github.com/abhinandan-jain01/nearmart/services"
	"github.com/abhinandan-jain01/nearmart/validation"
)

type Controller struct {
	locations *services.LocationService
	reviews   *services.ReviewService
	favorites *services.FavoriteService
}

func New(locations *services.LocationService, reviews *services.ReviewService, favorites *services.FavoriteService) *Controller {
	return &Controller{locations: locations, reviews: reviews, favorites: favorites}
}

// Nearby answers the public "stores near me" query. Coordinates are
// validated before the database is touched.
func (h *Controller) Nearby(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "lng is required")
	}
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "lat is required")
	}

	maxDistance, _ := strconv.ParseFloat(c.Query("maxDistance", "10000"), 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	stores, err := h.locations.FindNearby(ctx, services.NearbyInput{
		Lng:         lng,
		Lat:         lat,
		MaxDistance: maxDistance,
		Category:    c.Query("category"),
		OpenOnly:    c.Query("openOnly") == "true",
		SortBy:      c.Query("sortBy", "distance"),
		Limit:       limit,
	})
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched nearby stores", fiber.Map{"stores": stores})
}

func (h *Controller) AddLocation(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	ownerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	var input services.LocationInput
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input.Address); err != nil {
		return responses.Fail(c, err)
	}

	ownerType := models.OwnerCustomer
	if middlewares.ActorRole(c) == models.RoleRetailer {
		ownerType = models.OwnerRetailer
	}

	location, err := h.locations.AddLocation(ctx, ownerID, ownerType, input)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.Created(c, "location added successfully", fiber.Map{"location": location})
}

func (h *Controller) MyLocations(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	ownerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	locations, err := h.locations.ListForOwner(ctx, ownerID)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched locations", fiber.Map{"locations": locations})
}

func (h *Controller) UpdateLocation(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	ownerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	locationID, err := primitive.ObjectIDFromHex(c.Params("locationId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid location ID")
	}

	var input services.LocationInput
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input.Address); err != nil {
		return responses.Fail(c, err)
	}

	location, err := h.locations.UpdateLocation(ctx, locationID, ownerID, input)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "location updated", fiber.Map{"location": location})
}

func (h *Controller) UpdateHours(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	ownerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	locationID, err := primitive.ObjectIDFromHex(c.Params("locationId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid location ID")
	}

	var input struct {
		Hours models.OperatingHours `json:"operatingHours"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}

	location, err := h.locations.UpdateHours(ctx, locationID, ownerID, input.Hours)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "operating hours updated", fiber.Map{"location": location})
}

func (h *Controller) DeleteLocation(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	ownerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	locationID, err := primitive.ObjectIDFromHex(c.Params("locationId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid location ID")
	}

	if err := h.locations.Delete(ctx, locationID, ownerID); err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "location deleted", nil)
}

func (h *Controller) AddReview(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	retailerID, err := primitive.ObjectIDFromHex(c.Params("retailerId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid store ID")
	}

	var input struct {
		Rating  int    `json:"rating" validate:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	review, err := h.reviews.AddReview(ctx, customerID, retailerID, input.Rating, input.Comment)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.Created(c, "review added successfully", fiber.Map{"review": review})
}

func (h *Controller) Reviews(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	retailerID, err := primitive.ObjectIDFromHex(c.Params("retailerId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid store ID")
	}
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	reviews, total, err := h.reviews.ListReviews(ctx, retailerID, page, limit)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched reviews", fiber.Map{"reviews": reviews, "total": total})
}

func (h *Controller) FavoriteStore(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	retailerID, err := primitive.ObjectIDFromHex(c.Params("retailerId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid store ID")
	}

	if err := h.favorites.FavoriteStore(ctx, customerID, retailerID); err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "store added to favorites", nil)
}

func (h *Controller) UnfavoriteStore(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	retailerID, err := primitive.ObjectIDFromHex(c.Params("retailerId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid store ID")
	}

	if err := h.favorites.UnfavoriteStore(ctx, customerID, retailerID); err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "store removed from favorites", nil)
}
