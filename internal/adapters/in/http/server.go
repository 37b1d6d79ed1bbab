package http

import (
	"context"
	"errors"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/notifications"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer both issues tokens on login and resolves tokens back to
// usernames for the auth middleware and websocket handshake.
type TokenIssuer interface {
	Issue(aggregate *user.User) (string, error)
	Verify(tokenString string) (string, error)
}

// UserFinder resolves authenticated usernames to their aggregates.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// PaymentReader reads a settled payment back for the payments endpoint.
// queries.GetPaymentQueryHandler satisfies this interface.
type PaymentReader interface {
	Handle(ctx context.Context, query queries.GetPaymentQuery) (queries.GetPaymentQueryResponse, error)
}

// Server exposes the REST and websocket API.
type Server struct {
	registerUser      commands.RegisterUserCommandHandler
	createMenuItem    commands.CreateMenuItemCommandHandler
	updateMenuItem    commands.UpdateMenuItemCommandHandler
	deleteMenuItem    commands.DeleteMenuItemCommandHandler
	createOrder       commands.CreateOrderCommandHandler
	updateOrderStatus commands.UpdateOrderStatusCommandHandler
	createPayment     commands.CreatePaymentCommandHandler

	getMenuItems queries.GetMenuItemsQueryHandler
	getOrders    queries.GetOrdersQueryHandler
	getOrder     queries.GetOrderQueryHandler
	getPayment   PaymentReader

	tokens   TokenIssuer
	users    UserFinder
	registry *notifications.Registry
}

// NewServer wires the HTTP layer to the application handlers.
func NewServer(
	registerUser commands.RegisterUserCommandHandler,
	createMenuItem commands.CreateMenuItemCommandHandler,
	updateMenuItem commands.UpdateMenuItemCommandHandler,
	deleteMenuItem commands.DeleteMenuItemCommandHandler,
	createOrder commands.CreateOrderCommandHandler,
	updateOrderStatus commands.UpdateOrderStatusCommandHandler,
	createPayment commands.CreatePaymentCommandHandler,
	getMenuItems queries.GetMenuItemsQueryHandler,
	getOrders queries.GetOrdersQueryHandler,
	getOrder queries.GetOrderQueryHandler,
	getPayment PaymentReader,
	tokens TokenIssuer,
	users UserFinder,
	registry *notifications.Registry,
) (*Server, error) {
	if getPayment == nil {
		return nil, errs.NewValueIsRequiredError("getPayment")
	}
	if tokens == nil {
		return nil, errs.NewValueIsRequiredError("tokens")
	}
	if users == nil {
		return nil, errs.NewValueIsRequiredError("users")
	}
	if registry == nil {
		return nil, errs.NewValueIsRequiredError("registry")
	}

	return &Server{
		registerUser:      registerUser,
		createMenuItem:    createMenuItem,
		updateMenuItem:    updateMenuItem,
		deleteMenuItem:    deleteMenuItem,
		createOrder:       createOrder,
		updateOrderStatus: updateOrderStatus,
		createPayment:     createPayment,
		getMenuItems:      getMenuItems,
		getOrders:         getOrders,
		getOrder:          getOrder,
		getPayment:        getPayment,
		tokens:            tokens,
		users:             users,
		registry:          registry,
	}, nil
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.health)
	e.POST("/register", s.register)
	e.POST("/token", s.token)

	e.GET("/menu", s.listMenuItems)
	e.POST("/menu", s.addMenuItem, s.authenticate)
	e.PUT("/menu/:item_id", s.editMenuItem, s.authenticate)
	e.DELETE("/menu/:item_id", s.removeMenuItem, s.authenticate)

	e.POST("/orders", s.placeOrder, s.authenticate)
	e.GET("/orders", s.listOrders, s.authenticate)
	e.GET("/orders/:order_id", s.showOrder, s.authenticate)
	e.PATCH("/orders/:order_id/status", s.changeOrderStatus, s.authenticate)

	e.POST("/payments", s.payOrder, s.authenticate)
	e.GET("/payments/:order_id", s.showPayment, s.authenticate)

	e.GET("/ws/orders/:user_id", s.subscribeOrders)
	e.GET("/ws/orders/:user_id/:order_id", s.subscribeOrders)
}

func (s *Server) health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) register(ctx echo.Context) error {
	var req RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(userID, req.Username, req.Email, req.Password, role)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.registerUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"id":       userID.String(),
		"username": req.Username,
		"role":     req.Role,
	})
}

func (s *Server) token(ctx echo.Context) error {
	var req TokenRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	aggregate, err := s.users.GetByUsername(ctx.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return respondUnauthenticated(ctx, "invalid credentials")
		}
		return respondError(ctx, err)
	}

	if aggregate.IsDisabled() {
		return respondUnauthenticated(ctx, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(aggregate.PasswordHash()), []byte(req.Password)); err != nil {
		return respondUnauthenticated(ctx, "invalid credentials")
	}

	token, err := s.tokens.Issue(aggregate)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *Server) listMenuItems(ctx echo.Context) error {
	var restaurantID *kernel.UUID
	if raw := ctx.QueryParam("restaurant_id"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return respondBadRequest(ctx, "restaurant_id is not a valid UUID")
		}
		restaurantID = &id
	}

	query, err := queries.NewGetMenuItemsQuery(restaurantID)
	if err != nil {
		return respondError(ctx, err)
	}

	items, err := s.getMenuItems.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, items)
}

func (s *Server) addMenuItem(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return respondUnauthenticated(ctx, err.Error())
	}

	var req MenuItemRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	// Restaurants always create items for themselves; admins must name
	// the owning restaurant explicitly.
	restaurantID := actor.ID
	if req.RestaurantID != "" {
		restaurantID, err = kernel.UUIDFromString(req.RestaurantID)
		if err != nil {
			return respondBadRequest(ctx, "restaurant_id is not a valid UUID")
		}
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewCreateMenuItemCommand(
		itemID, restaurantID, actor.ID, actor.Role,
		req.Name, req.Description, req.Price, available,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createMenuItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": itemID.String()})
}

func (s *Server) editMenuItem(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return respondUnauthenticated(ctx, err.Error())
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("item_id"))
	if err != nil {
		return respondBadRequest(ctx, "item_id is not a valid UUID")
	}

	var req MenuItemRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	cmd, err := commands.NewUpdateMenuItemCommand(
		itemID, actor.ID, actor.Role,
		req.Name, req.Description, req.Price, available,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateMenuItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) removeMenuItem(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return respondUnauthenticated(ctx, err.Error())
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("item_id"))
	if err != nil {
		return respondBadRequest(ctx, "item_id is not a valid UUID")
	}

	cmd, err := commands.NewDeleteMenuItemCommand(itemID, actor.ID, actor.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.deleteMenuItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) placeOrder(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return respondUnauthenticated(ctx, err.Error())
	}
	if actor.Role != user.RoleCustomer {
		return respondError(ctx, errs.NewUnauthorizedError("place order"))
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return respondBadRequest(ctx, "restaurant_id is not a valid UUID")
	}

	items := make([]order.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		menuItemID, err := kernel.UUIDFromString(it.MenuItemID)
		if err != nil {
			return respondBadRequest(ctx, "menu_item_id is not a valid UUID")
		}
		line, err := order.NewLineItem(menuItemID, it.Quantity)
		if err != nil {
			return respondError(ctx, err)
		}
		items = append(items, line)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, actor.ID, restaurantID, items)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor.ID, actor.Role)
	if err != nil {
		return respondError(ctx, err)
	}
	resp, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, resp)
}

func (s *Server) listOrders(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return respondUnauthenticated(ctx, err.Error())
	}

	query, err := queries.NewGetOrdersQuery(actor.ID, actor.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

func (s *Server) showOrder(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return respondUnauthenticated(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return respondBadRequest(ctx, "order_id is not a valid UUID")
	}

	query, err := queries.NewGetOrderQuery(orderID, actor.ID, actor.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

func (s *Server) changeOrderStatus(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return respondUnauthenticated(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return respondBadRequest(ctx, "order_id is not a valid UUID")
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	var agentID *kernel.UUID
	if req.DeliveryAgentID != nil {
		id, err := kernel.UUIDFromString(*req.DeliveryAgentID)
		if err != nil {
			return respondBadRequest(ctx, "delivery_agent_id is not a valid UUID")
		}
		agentID = &id
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actor.ID, actor.Role, target, agentID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"order_id": orderID.String(),
		"status":   target.String(),
	})
}

func (s *Server) payOrder(ctx echo.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return respondUnauthenticated(ctx, err.Error())
	}

	var req CreatePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return respondBadRequest(ctx, "order_id is not a valid UUID")
	}

	cmd, err := commands.NewCreatePaymentCommand(orderID, actor.ID, actor.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetPaymentQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	// Repeated payment requests return the existing record unchanged,
	// as 200 rather than 201. Existence is checked before the command so
	// the status reflects what this request actually did; the response
	// body is only sent after the command's authorization checks pass.
	_, precheckErr := s.getPayment.Handle(ctx.Request().Context(), query)
	if precheckErr != nil && !errors.Is(precheckErr, errs.ErrObjectNotFound) {
		return respondError(ctx, precheckErr)
	}
	existed := precheckErr == nil

	if err := s.createPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getPayment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	return ctx.JSON(status, resp)
}

func (s *Server) showPayment(ctx echo.Context) error {
	if _, err := actorFromContext(ctx); err != nil {
		return respondUnauthenticated(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return respondBadRequest(ctx, "order_id is not a valid UUID")
	}

	query, err := queries.NewGetPaymentQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getPayment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}
