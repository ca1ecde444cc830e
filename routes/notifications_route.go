package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/abhinandan-jain01/nearmart/notifications"
	"github.com/abhinandan-jain01/nearmart/token"
)

// NotificationRoutes exposes the websocket endpoint. Browsers cannot set an
// Authorization header on a websocket handshake, so the token rides in the
// query string.
func NotificationRoutes(app *fiber.App, hub *notifications.Hub, tokens *token.Maker) {
	app.Use("/ws/notifications", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		claims, err := tokens.Verify(c.Query("token"))
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals("userId", claims.UserID)
		return c.Next()
	})

	app.Get("/ws/notifications", websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("userId").(string)
		if userID == "" {
			conn.Close()
			return
		}
		hub.Serve(userID, conn)
	}))
}
