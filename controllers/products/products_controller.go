package productsController

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/middlewares"
	"github.com/abhinandan-jain01/nearmart/repository"
	"github.com/abhinandan-jain01/nearmart/responses"
	"github.com/abhinandan-jain01/nearmart/services"
	"github.com/abhinandan-jain01/nearmart/validation"
)

type Controller struct {
	products  *services.ProductService
	favorites *services.FavoriteService
}

func New(products *services.ProductService, favorites *services.FavoriteService) *Controller {
	return &Controller{products: products, favorites: favorites}
}

func (h *Controller) Favorite(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid product ID")
	}

	if err := h.favorites.FavoriteProduct(ctx, customerID, productID); err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "product added to favorites", nil)
}

func (h *Controller) Unfavorite(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	customerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid product ID")
	}

	if err := h.favorites.UnfavoriteProduct(ctx, customerID, productID); err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "product removed from favorites", nil)
}

// Search is the public catalog listing: name regex, category filter,
// pagination. Only active products are visible here.
func (h *Controller) Search(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "10"), 10, 64)

	filter := repository.ProductFilter{
		Name:       c.Query("name"),
		Category:   c.Query("category"),
		ActiveOnly: true,
		Page:       page,
		Limit:      limit,
	}
	if retailerID := c.Query("retailerId"); retailerID != "" {
		id, err := primitive.ObjectIDFromHex(retailerID)
		if err != nil {
			return responses.FailStatus(c, fiber.StatusBadRequest, "invalid retailer ID")
		}
		filter.RetailerID = &id
	}

	products, total, err := h.products.Search(ctx, filter)
	if err != nil {
		return responses.Fail(c, err)
	}

	return responses.OK(c, "fetched products", fiber.Map{
		"products":    products,
		"total":       total,
		"currentPage": page,
	})
}

func (h *Controller) Detail(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid product ID")
	}

	product, err := h.products.Get(ctx, productID)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched product", fiber.Map{"product": product})
}

func (h *Controller) Create(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	retailerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	product, err := h.products.Create(ctx, retailerID, input)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.Created(c, "product added successfully", fiber.Map{"product": product})
}

func (h *Controller) Update(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	retailerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid product ID")
	}

	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}
	if err := validation.Struct(input); err != nil {
		return responses.Fail(c, err)
	}

	product, err := h.products.Update(ctx, retailerID, productID, input)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "product updated successfully", fiber.Map{"product": product})
}

func (h *Controller) AdjustStock(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	retailerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid product ID")
	}

	var input struct {
		Delta int `json:"delta" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}

	product, err := h.products.AdjustStock(ctx, retailerID, productID, input.Delta)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "stock updated", fiber.Map{"product": product})
}

func (h *Controller) SetActive(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	retailerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}
	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid product ID")
	}

	var input struct {
		IsActive bool `json:"isActive"`
	}
	if err := c.BodyParser(&input); err != nil {
		return responses.FailStatus(c, fiber.StatusBadRequest, "invalid request format")
	}

	product, err := h.products.SetActive(ctx, retailerID, productID, input.IsActive)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "product updated", fiber.Map{"product": product})
}

func (h *Controller) LowStock(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	retailerID, err := middlewares.ActorID(c)
	if err != nil {
		return responses.Fail(c, err)
	}

	products, err := h.products.LowStock(ctx, retailerID)
	if err != nil {
		return responses.Fail(c, err)
	}
	return responses.OK(c, "fetched low stock products", fiber.Map{"products": products})
}
