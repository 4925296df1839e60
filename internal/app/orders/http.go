// Package orders is the orders-list service: the filtered order table with
// per-row status advancement and privileged deletion.
package orders

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"restaurant-pos/internal/backend"
	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/order"
	"restaurant-pos/internal/view"
)

type service struct {
	client *backend.Client
	sess   domain.Session
	lg     *logger.Logger
}

// Run starts the orders service. Manager credentials are optional; without
// them the service simply refuses deletions.
func Run(ctx context.Context, port int, cfg config.App) error {
	lg := logger.New("orders-service")
	s := &service{
		client: backend.New(cfg.Backend.BaseURL, cfg.BackendTimeout(), lg),
		lg:     lg,
	}

	if cfg.Auth.Email != "" {
		sess, err := s.client.Login(ctx, cfg.Auth.Email, cfg.Auth.Password)
		if err != nil {
			lg.Error("login_failed", err, map[string]any{"email": cfg.Auth.Email})
		} else {
			s.sess = sess
			lg.Info("logged_in", map[string]any{"user": sess.User.Name, "role": sess.User.Role})
		}
	}

	lg.Info("listening", map[string]any{"port": port})
	srv := httpx.New(":"+strconv.Itoa(port), s.routes())
	return srv.Run(ctx)
}

func (s *service) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/orders", s.handleList)
	r.Post("/orders/{id}/advance", s.handleAdvance)
	r.Delete("/orders/{id}", s.handleDelete)
	return r
}

type itemRow struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type row struct {
	ID          int       `json:"id"`
	WaiterName  string    `json:"waiter_name"`
	TableNumber *int      `json:"table_number,omitempty"`
	Status      string    `json:"status"`
	NextStatus  string    `json:"next_status,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	Elapsed     string    `json:"elapsed"`
	TotalAmount float64   `json:"total_amount"`
	Items       []itemRow `json:"items"`
}

func (s *service) handleList(w http.ResponseWriter, r *http.Request) {
	status := domain.Status(r.URL.Query().Get("status"))
	list, err := s.client.Orders(r.Context(), status)
	if err != nil {
		s.writeBackendError(w, "orders_fetch_failed", err)
		return
	}
	if status != "" {
		// Older backends ignore the status query param.
		list = view.FilterByStatus(list, status)
	}

	now := time.Now().UTC()
	rows := make([]row, 0, len(list))
	for _, ord := range list {
		rows = append(rows, makeRow(ord, now))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": rows, "count": len(rows)})
}

func makeRow(ord domain.Order, now time.Time) row {
	rw := row{
		ID:          ord.ID,
		WaiterName:  ord.WaiterName,
		TableNumber: ord.TableNumber,
		Status:      string(ord.Status),
		CreatedAt:   ord.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   ord.UpdatedAt.Format(time.RFC3339),
		Elapsed:     view.ElapsedSince(ord.CreatedAt, now),
		TotalAmount: ord.TotalAmount,
	}
	if next, ok := ord.Status.Next(); ok {
		rw.NextStatus = string(next)
	}
	for _, it := range ord.Items {
		rw.Items = append(rw.Items, itemRow{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return rw
}

func (s *service) handleAdvance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "bad_order_id", "order id must be an integer")
		return
	}

	ord, err := s.client.Order(r.Context(), id)
	if err != nil {
		s.writeBackendError(w, "order_fetch_failed", err)
		return
	}
	if !ord.Status.Known() {
		s.lg.Warn("unknown_order_status", map[string]any{"order_id": id, "status": string(ord.Status)})
	}

	if err := order.Advance(r.Context(), s.client, &ord); err != nil {
		if errors.Is(err, order.ErrTerminal) {
			httpx.Error(w, http.StatusConflict, "terminal_status", err.Error())
			return
		}
		s.writeBackendError(w, "advance_failed", err)
		return
	}

	s.lg.Info("order_advanced", map[string]any{"order_id": id, "status": string(ord.Status)})
	httpx.JSON(w, http.StatusOK, map[string]any{
		"id":         ord.ID,
		"status":     string(ord.Status),
		"updated_at": ord.UpdatedAt.Format(time.RFC3339),
	})
}

func (s *service) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.sess.Valid() {
		httpx.Error(w, http.StatusForbidden, "not_authorized", "deletion requires a manager session")
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "bad_order_id", "order id must be an integer")
		return
	}

	if err := s.client.DeleteOrder(r.Context(), s.sess, id); err != nil {
		s.writeBackendError(w, "delete_failed", err)
		return
	}
	s.lg.Info("order_deleted", map[string]any{"order_id": id})
	w.WriteHeader(http.StatusNoContent)
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
