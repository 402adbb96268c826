// FILE: internal/handler/notification_handler.go
package handler

import (
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/logger"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/service"
	internalWS "rag-admin-be/internal/websocket"
	"rag-admin-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// NotificationHandler serves the admin inbox and the websocket upgrade
// endpoint that pushes bus events to connected clients.
type NotificationHandler struct {
	service   *service.NotificationService
	publisher events.Publisher
	hub       *internalWS.Hub
	logger    logger.ILogger
}

func NewNotificationHandler(service *service.NotificationService, pub events.Publisher, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service:   service,
		publisher: pub,
		hub:       hub,
		logger:    log,
	}
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notifications")
	notif.Use(serverutils.JwtMiddleware)
	notif.Get("/", h.GetNotifications)
	notif.Get("/unread-count", h.GetUnreadCount)
	notif.Patch("/:id/read", h.MarkAsRead)
	notif.Patch("/read-all", h.MarkAllAsRead)
	notif.Post("/broadcast", serverutils.AdminMiddleware, h.Broadcast)

	// The browser WebSocket API cannot set headers, so the handshake
	// authenticates itself instead of going through JwtMiddleware.
	router.Get("/ws", h.ServeWs)
}

// ServeWs upgrades the connection and registers it with the hub. The token
// arrives as a "token" query parameter, or a Bearer header for non-browser
// clients.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return apperrors.Unauthorized("missing token")
	}

	claims, err := serverutils.ParseToken(tokenStr)
	if err != nil {
		h.logger.Warn("NotificationHandler", "Rejected websocket handshake", map[string]interface{}{"error": err.Error()})
		return apperrors.Unauthorized("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return apperrors.Unauthorized("token missing user_id")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return apperrors.Unauthorized("invalid user id in token")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "WebSocket session started", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	q := serverutils.ParsePageQuery(c, "created_at")
	notifications, total, err := h.service.GetNotifications(c.UserContext(), userID, q.Limit, q.Offset())
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("ok", serverutils.NewListResponse(notifications, total, q.Page, q.Limit)))
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.service.GetUnreadCount(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("ok", fiber.Map{"count": count}))
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid id")
	}

	if err := h.service.MarkAsRead(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse[any]("notification marked as read", nil))
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkAllAsRead(c.UserContext(), userID); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse[any]("notifications marked as read", nil))
}

// Broadcast publishes a system-wide announcement onto the event bus. The
// notification consumer fans it out to every admin inbox and the hub.
func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.InvalidInput("invalid request body")
	}
	if req.Title == "" || req.Message == "" {
		return apperrors.InvalidInput("title and message are required")
	}

	h.publisher.PublishSystemBroadcast(c.UserContext(), req.Title, req.Message)
	return c.JSON(serverutils.SuccessResponse[any]("broadcast queued", nil))
}

func currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Unauthorized("invalid session")
	}
	return userID, nil
}
