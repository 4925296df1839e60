// Package dashboard is the manager console service: staff, inventory and
// menu administration plus a derived overview of the restaurant's state.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"restaurant-pos/internal/backend"
	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
)

type service struct {
	client *backend.Client
	sess   domain.Session
	lg     *logger.Logger
}

// Run starts the dashboard service. Unlike the waiter-facing services, every
// resource here is privileged, so a manager login is required up front.
func Run(ctx context.Context, port int, cfg config.App) error {
	lg := logger.New("dashboard-service")
	s := &service{
		client: backend.New(cfg.Backend.BaseURL, cfg.BackendTimeout(), lg),
		lg:     lg,
	}

	if cfg.Auth.Email == "" {
		return errors.New("dashboard requires auth credentials in config")
	}
	sess, err := s.client.Login(ctx, cfg.Auth.Email, cfg.Auth.Password)
	if err != nil {
		return fmt.Errorf("manager login: %w", err)
	}
	s.sess = sess
	lg.Info("logged_in", map[string]any{"user": sess.User.Name, "role": sess.User.Role})

	lg.Info("listening", map[string]any{"port": port})
	srv := httpx.New(":"+strconv.Itoa(port), s.routes())
	return srv.Run(ctx)
}

func (s *service) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/summary", s.handleSummary)
	r.Get("/staff", s.handleStaffList)
	r.Post("/staff", s.handleStaffAdd)
	r.Get("/inventory", s.handleInventoryList)
	r.Post("/inventory", s.handleInventoryAdd)
	r.Get("/menu", s.handleMenuList)
	r.Post("/menu", s.handleMenuAdd)
	return r
}

func (s *service) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.client.Staff(ctx, s.sess)
	if err != nil {
		s.writeBackendError(w, "staff_fetch_failed", err)
		return
	}
	inv, err := s.client.Inventory(ctx, s.sess)
	if err != nil {
		s.writeBackendError(w, "inventory_fetch_failed", err)
		return
	}
	menu, err := s.client.Menu(ctx)
	if err != nil {
		s.writeBackendError(w, "menu_fetch_failed", err)
		return
	}
	orders, err := s.client.Orders(ctx, "")
	if err != nil {
		s.writeBackendError(w, "orders_fetch_failed", err)
		return
	}

	httpx.JSON(w, http.StatusOK, Summary{
		Staff:    summarizeStaff(staff),
		LowStock: lowStock(inv),
		TopMenu:  topMenu(menu),
		Orders:   summarizeOrders(orders),
	})
}

func (s *service) handleStaffList(w http.ResponseWriter, r *http.Request) {
	staff, err := s.client.Staff(r.Context(), s.sess)
	if err != nil {
		s.writeBackendError(w, "staff_fetch_failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"staff": staff, "count": len(staff)})
}

func (s *service) handleStaffAdd(w http.ResponseWriter, r *http.Request) {
	var m domain.StaffMember
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		httpx.Error(w, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Role) == "" {
		httpx.Error(w, http.StatusBadRequest, "missing_fields", "name and role are required")
		return
	}

	created, err := s.client.AddStaff(r.Context(), s.sess, m)
	if err != nil {
		s.writeBackendError(w, "staff_add_failed", err)
		return
	}
	s.lg.Info("staff_added", map[string]any{"name": created.Name, "role": created.Role})
	httpx.JSON(w, http.StatusCreated, created)
}

func (s *service) handleInventoryList(w http.ResponseWriter, r *http.Request) {
	inv, err := s.client.Inventory(r.Context(), s.sess)
	if err != nil {
		s.writeBackendError(w, "inventory_fetch_failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"inventory": inv, "count": len(inv)})
}

func (s *service) handleInventoryAdd(w http.ResponseWriter, r *http.Request) {
	var it domain.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		httpx.Error(w, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}
	if strings.TrimSpace(it.Name) == "" {
		httpx.Error(w, http.StatusBadRequest, "missing_fields", "name is required")
		return
	}
	if it.Quantity < 0 {
		httpx.Error(w, http.StatusBadRequest, "bad_quantity", "quantity cannot be negative")
		return
	}

	created, err := s.client.AddInventoryItem(r.Context(), s.sess, it)
	if err != nil {
		s.writeBackendError(w, "inventory_add_failed", err)
		return
	}
	s.lg.Info("inventory_added", map[string]any{"name": created.Name, "quantity": created.Quantity})
	httpx.JSON(w, http.StatusCreated, created)
}

func (s *service) handleMenuList(w http.ResponseWriter, r *http.Request) {
	menu, err := s.client.Menu(r.Context())
	if err != nil {
		s.writeBackendError(w, "menu_fetch_failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"menu": menu, "count": len(menu)})
}

func (s *service) handleMenuAdd(w http.ResponseWriter, r *http.Request) {
	var it domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		httpx.Error(w, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}
	if strings.TrimSpace(it.Name) == "" || strings.TrimSpace(it.Category) == "" {
		httpx.Error(w, http.StatusBadRequest, "missing_fields", "name and category are required")
		return
	}
	if it.Price <= 0 {
		httpx.Error(w, http.StatusBadRequest, "bad_price", "price must be positive")
		return
	}

	created, err := s.client.AddMenuItem(r.Context(), s.sess, it)
	if err != nil {
		s.writeBackendError(w, "menu_add_failed", err)
		return
	}
	s.lg.Info("menu_added", map[string]any{"name": created.Name, "category": created.Category})
	httpx.JSON(w, http.StatusCreated, created)
}

func (s *service) writeBackendError(w http.ResponseWriter, action string, err error) {
	var berr *backend.BusinessError
	if errors.As(err, &berr) {
		httpx.Error(w, http.StatusUnprocessableEntity, "rejected", berr.Message)
		return
	}
	s.lg.Error(action, err, nil)
	httpx.Error(w, http.StatusBadGateway, "backend_unavailable", "could not reach the backend; try again")
}
