package handler

import (
	"context"
	"room_booking/middleware"
	"room_booking/model"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// NotificationSocket pushes the connected user's notifications as they are
// published. The connection is closed when the client goes away.
func (h *Handler) NotificationSocket(conn *websocket.Conn) {
	defer conn.Close()

	p, ok := conn.Locals(middleware.PrincipalKey).(model.Principal)
	if !ok || h.Subscriber == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reads only to notice the client closing.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for payload := range h.Subscriber.Subscribe(ctx, p.UserID) {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			zap.L().Debug("notification socket write failed", zap.String("user_id", p.UserID.String()), zap.Error(err))
			return
		}
	}
}
