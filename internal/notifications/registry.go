// Package notifications holds the in-memory connection registry that fans
// order events out to connected clients. The registry is the single source
// of truth for who is listening to what: connections register under a user
// and a scope, and the application layer pushes events through the
// ports.Notifier interface without knowing anything about sockets.
package notifications

import (
	"context"
	"log/slog"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// ScopeAll subscribes a connection to every order event for the user,
// as opposed to a single-order scope keyed by the order's UUID string.
const ScopeAll = "all"

// Conn is a single client connection capable of receiving events.
// Send must be safe for concurrent use and should bound how long a slow
// client can block the caller.
type Conn interface {
	Send(event any) error
}

// UserFinder looks up users by role for role-wide broadcasts.
// ports.UserRepository satisfies this interface.
type UserFinder interface {
	GetAllByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}

// Registry tracks live connections, keyed by user and scope. A user may
// hold any number of connections across any number of scopes. All methods
// are safe for concurrent use.
//
// Delivery is fire-and-forget: a failed Send is logged and skipped, it is
// never returned to the caller and it never affects delivery to the other
// connections of the same event.
type Registry struct {
	users  UserFinder
	logger *slog.Logger

	mu    sync.RWMutex
	conns map[kernel.UUID]map[string]map[Conn]struct{}
}

// NewRegistry creates an empty connection registry.
func NewRegistry(users UserFinder, logger *slog.Logger) (*Registry, error) {
	if users == nil {
		return nil, errs.NewValueIsRequiredError("users")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Registry{
		users:  users,
		logger: logger.With("component", "notification_registry"),
		conns:  make(map[kernel.UUID]map[string]map[Conn]struct{}),
	}, nil
}

// Register adds a connection under the given user and scope.
// Scope is either ScopeAll or an order UUID string.
func (r *Registry) Register(userID kernel.UUID, scope string, conn Conn) {
	if conn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	scopes, ok := r.conns[userID]
	if !ok {
		scopes = make(map[string]map[Conn]struct{})
		r.conns[userID] = scopes
	}
	set, ok := scopes[scope]
	if !ok {
		set = make(map[Conn]struct{})
		scopes[scope] = set
	}
	set[conn] = struct{}{}
}

// Unregister removes a connection from the given user and scope.
// Empty scope sets and empty user entries are pruned so the registry
// does not leak entries for users who have disconnected.
func (r *Registry) Unregister(userID kernel.UUID, scope string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	scopes, ok := r.conns[userID]
	if !ok {
		return
	}
	set, ok := scopes[scope]
	if !ok {
		return
	}

	delete(set, conn)
	if len(set) == 0 {
		delete(scopes, scope)
	}
	if len(scopes) == 0 {
		delete(r.conns, userID)
	}
}

// NotifyUser delivers the event to the user's connections on the order's
// scope and on ScopeAll. A connection registered under both scopes still
// receives the event exactly once.
func (r *Registry) NotifyUser(userID kernel.UUID, orderID kernel.UUID, event any) {
	r.mu.RLock()
	targets := r.collect(userID, orderID.String(), ScopeAll)
	r.mu.RUnlock()

	r.send(targets, event)
}

// NotifyRestaurantAll delivers the event to the restaurant's ScopeAll
// connections only. Order-scoped connections belong to order watchers,
// not to the restaurant's incoming-orders feed.
func (r *Registry) NotifyRestaurantAll(restaurantID kernel.UUID, event any) {
	r.mu.RLock()
	targets := r.collect(restaurantID, ScopeAll)
	r.mu.RUnlock()

	r.send(targets, event)
}

// BroadcastToDeliveryAgents delivers the event to the ScopeAll connections
// of every user with the delivery agent role. Order-scoped connections are
// watching a specific order and do not receive role-wide availability events.
func (r *Registry) BroadcastToDeliveryAgents(ctx context.Context, event any) {
	agents, err := r.users.GetAllByRole(ctx, user.RoleDeliveryAgent)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to resolve delivery agents for broadcast", "error", err)
		return
	}

	var targets []Conn
	r.mu.RLock()
	for _, agent := range agents {
		targets = append(targets, r.collect(agent.ID(), ScopeAll)...)
	}
	r.mu.RUnlock()

	r.send(targets, event)
}

// collect snapshots the user's connections on the given scopes while the
// caller holds the read lock. Duplicates across scopes are collapsed.
func (r *Registry) collect(userID kernel.UUID, scopes ...string) []Conn {
	userScopes, ok := r.conns[userID]
	if !ok {
		return nil
	}

	seen := make(map[Conn]struct{})
	var targets []Conn
	for _, scope := range scopes {
		for conn := range userScopes[scope] {
			if _, dup := seen[conn]; dup {
				continue
			}
			seen[conn] = struct{}{}
			targets = append(targets, conn)
		}
	}
	return targets
}

// send pushes the event to each connection outside the registry lock, so
// a slow client cannot stall registrations or other notifications.
func (r *Registry) send(targets []Conn, event any) {
	for _, conn := range targets {
		if err := conn.Send(event); err != nil {
			r.logger.Warn("failed to push event to connection", "error", err)
		}
	}
}
