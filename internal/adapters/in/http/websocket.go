package http

import (
	"net/http"
	"sync"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/notifications"
	"fooddelivery/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// wsConn wraps a websocket connection behind the notification registry's
// Conn interface. The registry pushes events from multiple goroutines,
// so writes are serialized and bounded by a deadline.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) Send(event any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(event)
}

// subscribeOrders upgrades the connection and registers it for order
// events. Without an order_id the subscription covers all of the user's
// orders; with one it covers that single order.
//
// Browsers cannot set headers on websocket handshakes, so the token is
// passed as a query parameter instead of an Authorization header.
func (s *Server) subscribeOrders(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return respondUnauthenticated(ctx, "missing token")
	}

	actor, err := s.resolveToken(ctx.Request().Context(), token)
	if err != nil {
		return respondUnauthenticated(ctx, "invalid or expired token")
	}

	userID, err := kernel.UUIDFromString(ctx.Param("user_id"))
	if err != nil {
		return respondBadRequest(ctx, "user_id is not a valid UUID")
	}
	if actor.Role != user.RoleAdmin && !actor.ID.IsEqual(userID) {
		return respondError(ctx, errs.NewUnauthorizedError("subscribe to another user's events"))
	}

	scope := notifications.ScopeAll
	if raw := ctx.Param("order_id"); raw != "" {
		orderID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return respondBadRequest(ctx, "order_id is not a valid UUID")
		}

		// The actor must be allowed to see the order before listening
		// to its events.
		query, err := queries.NewGetOrderQuery(orderID, actor.ID, actor.Role)
		if err != nil {
			return respondError(ctx, err)
		}
		if _, err := s.getOrder.Handle(ctx.Request().Context(), query); err != nil {
			return respondError(ctx, err)
		}

		scope = orderID.String()
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return err
	}

	subscriber := &wsConn{conn: conn}
	s.registry.Register(userID, scope, subscriber)
	defer func() {
		s.registry.Unregister(userID, scope, subscriber)
		conn.Close()
	}()

	// Drain the connection until the client disconnects. Incoming
	// messages are ignored; the socket is push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
