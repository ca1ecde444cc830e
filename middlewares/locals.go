package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinandan-jain01/nearmart/apperrors"
)

// ActorID returns the authenticated user's ObjectID from Locals, as set by
// Auth.
func ActorID(c *fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals("userId").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, apperrors.Unauthorized("user ID not found in token")
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, apperrors.Unauthorized("invalid user ID format")
	}
	return id, nil
}

// ActorRole returns the authenticated user's role claim.
func ActorRole(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
