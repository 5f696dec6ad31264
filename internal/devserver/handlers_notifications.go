package devserver

import (
	"github.com/Abraxas-365/hireboard/pkg/kernel"
	"github.com/Abraxas-365/hireboard/recruitment/notification"
	"github.com/gofiber/fiber/v2"
)

// ListNotifications - GET /api/notifications
func (h *Handlers) ListNotifications(c *fiber.Ctx) error {
	filters := notification.Filters{
		Type:       notification.NotificationType(c.Query("type")),
		UnreadOnly: queryBool(c, "unread_only"),
	}
	return reply(c, h.store.Notifications(viewerID(c), filters, parsePaginationOptions(c)))
}

// UnreadCount - GET /api/notifications/unread-count
func (h *Handlers) UnreadCount(c *fiber.Ctx) error {
	return reply(c, notification.UnreadCount{Count: h.store.UnreadCount(viewerID(c))})
}

// MarkRead - PATCH /api/notifications/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	if err := h.store.MarkRead(viewerID(c), kernel.NotificationID(c.Params("id"))); err != nil {
		return err
	}
	return replyDone(c, "Notification marked as read")
}

// MarkAllRead - PATCH /api/notifications/read-all
func (h *Handlers) MarkAllRead(c *fiber.Ctx) error {
	h.store.MarkAllRead(viewerID(c))
	return replyDone(c, "All notifications marked as read")
}

// DeleteNotification - DELETE /api/notifications/:id
func (h *Handlers) DeleteNotification(c *fiber.Ctx) error {
	if err := h.store.DeleteNotification(viewerID(c), kernel.NotificationID(c.Params("id"))); err != nil {
		return err
	}
	return replyDone(c, "Notification deleted")
}
