// Package backend is the REST client for the external restaurant API that
// owns menus, orders, staff, and inventory. All persistent state lives on
// the other side of this client; callers hold read-through copies only.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
	lg      *logger.Logger

	cache   Cache // nil disables catalog caching
	menuTTL time.Duration
}

func New(baseURL string, timeout time.Duration, lg *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		lg:      lg,
	}
}

// UseCache enables read-through caching of the menu catalog.
func (c *Client) UseCache(cache Cache, menuTTL time.Duration) {
	c.cache = cache
	c.menuTTL = menuTTL
}

// envelope is the backend's uniform response wrapper. Which payload field
// is populated depends on the endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Order   json.RawMessage `json:"order"`
	Item    json.RawMessage `json:"item"`
	Staff   json.RawMessage `json:"staff"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
}

// do runs one request and sorts failures into the error taxonomy: network
// problems and unreadable responses become TransportError, a readable
// envelope with success=false becomes BusinessError with the backend's
// message verbatim.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unreadable response: %w", err)}
	}
	if !env.Success {
		if env.Message != "" {
			return nil, &BusinessError{StatusCode: resp.StatusCode, Message: env.Message}
		}
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}
	return &env, nil
}

// Login exchanges credentials for a bearer session. The token is opaque
// here; it is only ever echoed back in Authorization headers.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	env, err := c.do(ctx, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return domain.Session{}, err
	}
	sess := domain.Session{Token: env.Token}
	if len(env.User) > 0 {
		if err := json.Unmarshal(env.User, &sess.User); err != nil {
			return domain.Session{}, fmt.Errorf("decode user: %w", err)
		}
	}
	return sess, nil
}

// Menu lists the catalog. With a cache attached this is read-through: a
// cache hit skips the network, a miss is fetched and stored with the
// configured TTL. Cache failures are logged and ignored.
func (c *Client) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, "menu"); err != nil {
			c.lg.Debug("menu_cache_get_failed", map[string]any{"err": err.Error()})
		} else if cached != "" {
			var items []domain.MenuItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	env, err := c.do(ctx, http.MethodGet, "/menu", "", nil)
	if err != nil {
		return nil, err
	}
	var items []domain.MenuItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	if c.cache != nil {
		if buf, err := json.Marshal(items); err == nil {
			if err := c.cache.Set(ctx, "menu", string(buf), c.menuTTL); err != nil {
				c.lg.Debug("menu_cache_set_failed", map[string]any{"err": err.Error()})
			}
		}
	}
	return items, nil
}

// Categories lists the menu categories. Older backend deployments have no
// /categories endpoint; those get the distinct categories derived from the
// menu instead, in first-seen order.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	env, err := c.do(ctx, http.MethodGet, "/categories", "", nil)
	if err != nil {
		var terr *TransportError
		if errors.As(err, &terr) && terr.StatusCode == http.StatusNotFound {
			return c.categoriesFromMenu(ctx)
		}
		return nil, err
	}
	var cats []string
	if err := json.Unmarshal(env.Data, &cats); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return cats, nil
}

func (c *Client) categoriesFromMenu(ctx context.Context) ([]string, error) {
	items, err := c.Menu(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var cats []string
	for _, it := range items {
		if it.Category != "" && !seen[it.Category] {
			seen[it.Category] = true
			cats = append(cats, it.Category)
		}
	}
	return cats, nil
}

// Orders lists orders, optionally filtered server-side by status. An empty
// status fetches everything.
func (c *Client) Orders(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	path := "/orders"
	if status != "" {
		path += "?" + url.Values{"status": {string(status)}}.Encode()
	}
	env, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	var dtos []domain.OrderDTO
	if err := json.Unmarshal(env.Data, &dtos); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	orders := make([]domain.Order, 0, len(dtos))
	for _, dto := range dtos {
		ord, err := dto.ToOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, id int) (domain.Order, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), "", nil)
	if err != nil {
		return domain.Order{}, err
	}
	var dto domain.OrderDTO
	if err := json.Unmarshal(env.Data, &dto); err != nil {
		return domain.Order{}, fmt.Errorf("decode order: %w", err)
	}
	return dto.ToOrder()
}

// CreateOrder submits a draft. The created order comes back without items
// and without updated_at; the backend sets updated_at equal to created_at
// on insert, so the copy here mirrors that.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.Order, error) {
	env, err := c.do(ctx, http.MethodPost, "/orders", "", draft)
	if err != nil {
		return domain.Order{}, err
	}
	var dto domain.OrderDTO
	if err := json.Unmarshal(env.Order, &dto); err != nil {
		return domain.Order{}, fmt.Errorf("decode created order: %w", err)
	}
	if dto.UpdatedAt == "" {
		dto.UpdatedAt = dto.CreatedAt
	}
	return dto.ToOrder()
}

// UpdateOrderStatus asks the backend to set an order's status and returns
// the server-side updated_at. Implements order.StatusUpdater.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status domain.Status) (time.Time, error) {
	env, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), "", map[string]string{
		"status": string(status),
	})
	if err != nil {
		return time.Time{}, err
	}
	var updated struct {
		UpdatedAt string `json:"updated_at"`
	}
	if err := json.Unmarshal(env.Order, &updated); err != nil {
		return time.Time{}, fmt.Errorf("decode update response: %w", err)
	}
	return domain.ParseTimestamp(updated.UpdatedAt)
}

// DeleteOrder removes an order. Privileged: requires a manager session.
func (c *Client) DeleteOrder(ctx context.Context, sess domain.Session, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), sess.Token, nil)
	return err
}

func (c *Client) Staff(ctx context.Context, sess domain.Session) ([]domain.StaffMember, error) {
	env, err := c.do(ctx, http.MethodGet, "/staff", sess.Token, nil)
	if err != nil {
		return nil, err
	}
	var staff []domain.StaffMember
	if err := json.Unmarshal(env.Data, &staff); err != nil {
		return nil, fmt.Errorf("decode staff: %w", err)
	}
	return staff, nil
}

func (c *Client) AddStaff(ctx context.Context, sess domain.Session, m domain.StaffMember) (domain.StaffMember, error) {
	env, err := c.do(ctx, http.MethodPost, "/staff", sess.Token, m)
	if err != nil {
		return domain.StaffMember{}, err
	}
	var created domain.StaffMember
	if err := json.Unmarshal(env.Staff, &created); err != nil {
		return domain.StaffMember{}, fmt.Errorf("decode staff member: %w", err)
	}
	return created, nil
}

func (c *Client) Inventory(ctx context.Context, sess domain.Session) ([]domain.InventoryItem, error) {
	env, err := c.do(ctx, http.MethodGet, "/inventory", sess.Token, nil)
	if err != nil {
		return nil, err
	}
	var items []domain.InventoryItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	return items, nil
}

func (c *Client) AddInventoryItem(ctx context.Context, sess domain.Session, it domain.InventoryItem) (domain.InventoryItem, error) {
	env, err := c.do(ctx, http.MethodPost, "/inventory", sess.Token, it)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	var created domain.InventoryItem
	if err := json.Unmarshal(env.Item, &created); err != nil {
		return domain.InventoryItem{}, fmt.Errorf("decode inventory item: %w", err)
	}
	return created, nil
}

func (c *Client) AddMenuItem(ctx context.Context, sess domain.Session, it domain.MenuItem) (domain.MenuItem, error) {
	env, err := c.do(ctx, http.MethodPost, "/menu", sess.Token, it)
	if err != nil {
		return domain.MenuItem{}, err
	}
	var created domain.MenuItem
	if err := json.Unmarshal(env.Item, &created); err != nil {
		return domain.MenuItem{}, fmt.Errorf("decode menu item: %w", err)
	}
	return created, nil
}
