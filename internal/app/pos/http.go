// Package pos is the order-entry service: menu browsing, session-scoped
// carts, and cart-to-order submission against the backend.
package pos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"restaurant-pos/internal/backend"
	"restaurant-pos/internal/cart"
	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/mq"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/order"
)

// eventPublisher is the optional broker hookup; nil disables publishing.
type eventPublisher interface {
	PublishEvent(ctx context.Context, body []byte) error
}

type service struct {
	store  *cart.Store
	client *backend.Client
	events eventPublisher
	lg     *logger.Logger
}

// Run starts the POS service.
func Run(ctx context.Context, port int, cfg config.App) error {
	lg := logger.New("pos-service")
	client := backend.New(cfg.Backend.BaseURL, cfg.BackendTimeout(), lg)
	if cfg.Redis.Addr != "" {
		client.UseCache(backend.NewRedisCache(cfg.Redis.Addr, "pos"), cfg.MenuTTL())
		lg.Info("menu_cache_enabled", map[string]any{"addr": cfg.Redis.Addr})
	}

	s := &service{store: cart.NewStore(), client: client, lg: lg}
	if cfg.Rabbit.Host != "" {
		mqc, err := mq.Dial(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Pass)
		if err != nil {
			// Boards fall back to polling, so order entry keeps working.
			lg.Error("mq_dial_failed", err, nil)
		} else {
			defer mqc.Close()
			if err := mqc.DeclareEvents(); err != nil {
				lg.Error("mq_declare_failed", err, nil)
			} else {
				s.events = mqc
				lg.Info("event_publishing_enabled", nil)
			}
		}
	}

	lg.Info("listening", map[string]any{"port": port})
	srv := httpx.New(":"+strconv.Itoa(port), s.routes())
	return srv.Run(ctx)
}

func (s *service) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/menu", s.handleMenu)
	r.Get("/categories", s.handleCategories)
	r.Post("/carts", s.handleCreateCart)
	r.Get("/carts/{id}", s.handleGetCart)
	r.Delete("/carts/{id}", s.handleDeleteCart)
	r.Post("/carts/{id}/items", s.handleAddItem)
	r.Patch("/carts/{id}/items/{index}", s.handleAdjustItem)
	r.Post("/carts/{id}/submit", s.handleSubmit)
	return r
}

func (s *service) handleMenu(w http.ResponseWriter, r *http.Request) {
	items, err := s.client.Menu(r.Context())
	if err != nil {
		s.writeBackendError(w, "menu_fetch_failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (s *service) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.client.Categories(r.Context())
	if err != nil {
		s.writeBackendError(w, "categories_fetch_failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, cats)
}

func (s *service) handleCreateCart(w http.ResponseWriter, r *http.Request) {
	id := s.store.Create()
	s.lg.Debug("cart_created", map[string]any{"cart_id": id})
	httpx.JSON(w, http.StatusCreated, map[string]string{"cart_id": id})
}

type cartView struct {
	CartID string      `json:"cart_id"`
	Lines  []cart.Line `json:"lines"`
	Total  string      `json:"total"`
}

func (s *service) handleGetCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lines, total, ok := s.store.Snapshot(id)
	if !ok {
		httpx.Error(w, http.StatusNotFound, "unknown_cart", "no such cart session")
		return
	}
	httpx.JSON(w, http.StatusOK, cartView{CartID: id, Lines: lines, Total: total})
}

func (s *service) handleDeleteCart(w http.ResponseWriter, r *http.Request) {
	s.store.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *service) handleAddItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		MenuItemID int `json:"menu_item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "bad_json", "invalid request body")
		return
	}

	item, ok, err := s.lookupMenuItem(r.Context(), req.MenuItemID)
	if err != nil {
		s.writeBackendError(w, "menu_fetch_failed", err)
		return
	}
	if !ok {
		httpx.Error(w, http.StatusNotFound, "unknown_menu_item", "menu item not in the catalog")
		return
	}

	if !s.store.Mutate(id, func(c *cart.Cart) { c.AddItem(item) }) {
		httpx.Error(w, http.StatusNotFound, "unknown_cart", "no such cart session")
		return
	}
	lines, total, _ := s.store.Snapshot(id)
	httpx.JSON(w, http.StatusOK, cartView{CartID: id, Lines: lines, Total: total})
}

func (s *service) handleAdjustItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "bad_index", "line index must be an integer")
		return
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "bad_json", "invalid request body")
		return
	}

	// Out-of-range indexes are a no-op inside the cart; the response just
	// reflects the current state.
	if !s.store.Mutate(id, func(c *cart.Cart) { c.AdjustQuantity(index, req.Delta) }) {
		httpx.Error(w, http.StatusNotFound, "unknown_cart", "no such cart session")
		return
	}
	lines, total, _ := s.store.Snapshot(id)
	httpx.JSON(w, http.StatusOK, cartView{CartID: id, Lines: lines, Total: total})
}

type submitRequest struct {
	WaiterName  string `json:"waiter_name"`
	TableNumber string `json:"table_number"`
}

func (s *service) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	reqID := logger.NewRequestID()
	lg := s.lg.WithRequestID(reqID)

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "bad_json", "invalid request body")
		return
	}

	lines, _, ok := s.store.Snapshot(id)
	if !ok {
		httpx.Error(w, http.StatusNotFound, "unknown_cart", "no such cart session")
		return
	}

	draft, err := order.BuildDraft(lines, req.WaiterName, req.TableNumber)
	if err != nil {
		var verr order.ValidationError
		if errors.As(err, &verr) {
			httpx.Error(w, http.StatusBadRequest, verr.Code, verr.Message)
			return
		}
		httpx.Error(w, http.StatusBadRequest, "invalid_draft", err.Error())
		return
	}

	created, err := s.client.CreateOrder(r.Context(), draft)
	if err != nil {
		s.writeBackendError(w, "order_submission_failed", err)
		return
	}

	if !order.VerifyTotal(draft, created.TotalAmount) {
		lg.Warn("total_mismatch", map[string]any{
			"order_id":      created.ID,
			"local_total":   order.DraftTotal(draft).StringFixed(2),
			"backend_total": created.TotalAmount,
		})
	}

	// The cart is cleared only after the backend confirmed the order.
	s.store.Mutate(id, func(c *cart.Cart) { c.Clear() })
	s.publishEvent(r.Context(), created)
	lg.Info("order_placed", map[string]any{
		"order_id": created.ID,
		"waiter":   created.WaiterName,
		"total":    created.TotalAmount,
	})

	httpx.JSON(w, http.StatusCreated, map[string]any{
		"id":           created.ID,
		"status":       string(created.Status),
		"total_amount": created.TotalAmount,
	})
}

func (s *service) publishEvent(ctx context.Context, ord domain.Order) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(domain.OrderEvent{
		OrderID:   ord.ID,
		Status:    string(ord.Status),
		UpdatedAt: ord.UpdatedAt.Format("2006-01-02T15:04:05"),
	})
	if err != nil {
		return
	}
	if err := s.events.PublishEvent(ctx, body); err != nil {
		// Boards still poll; a lost hint only delays their refresh.
		s.lg.Error("event_publish_failed", err, map[string]any{"order_id": ord.ID})
	}
}

func (s *service) lookupMenuItem(ctx context.Context, id int) (domain.MenuItem, bool, error) {
	items, err := s.client.Menu(ctx)
	if err != nil {
		return domain.MenuItem{}, false, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, true, nil
		}
	}
	return domain.MenuItem{}, false, nil
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
