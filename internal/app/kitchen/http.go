package kitchen

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
	"restaurant-pos/internal/common/mq"
	"restaurant-pos/internal/order"
)

// Run starts the kitchen board service: a polling (and optionally
// event-driven) refresher plus the HTTP surface the display consumes.
func Run(ctx context.Context, port int, cfg config.App) error {
	lg := logger.New("kitchen-board")
	client := backend.New(cfg.Backend.BaseURL, cfg.BackendTimeout(), lg)
	board := NewBoard(client, lg)

	trigger := make(chan struct{}, 1)
	if cfg.Rabbit.Host != "" {
		mqc, err := mq.Dial(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Pass)
		if err != nil {
			// Push refresh is an optimization; polling still covers freshness.
			lg.Error("mq_dial_failed", err, nil)
		} else {
			defer mqc.Close()
			if err := mqc.DeclareEvents(); err != nil {
				lg.Error("mq_declare_failed", err, nil)
			} else if err := Subscribe(ctx, mqc, trigger, lg); err != nil {
				lg.Error("mq_subscribe_failed", err, nil)
			} else {
				lg.Info("push_refresh_enabled", nil)
			}
		}
	}

	board.Refresh(ctx)
	poller := &Poller{Interval: cfg.PollInterval(), Refresh: board.Refresh, Trigger: trigger}
	go poller.Run(ctx)

	r := chi.NewRouter()
	r.Get("/board", func(w http.ResponseWriter, req *http.Request) {
		httpx.JSON(w, http.StatusOK, board.View(time.Now().UTC()))
	})
	r.Post("/board/orders/{id}/advance", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(req, "id"))
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "bad_order_id", "order id must be an integer")
			return
		}
		ord, err := board.Advance(req.Context(), id)
		if err != nil {
			writeAdvanceError(w, lg, id, err)
			return
		}
		lg.Info("order_advanced", map[string]any{"order_id": id, "status": string(ord.Status)})
		httpx.JSON(w, http.StatusOK, map[string]any{"id": ord.ID, "status": string(ord.Status)})
	})

	lg.Info("listening", map[string]any{"port": port, "poll_interval": cfg.PollInterval().String()})
	srv := httpx.New(":"+strconv.Itoa(port), r)
	return srv.Run(ctx)
}

func writeAdvanceError(w http.ResponseWriter, lg *logger.Logger, id int, err error) {
	var berr *backend.BusinessError
	switch {
	case errors.Is(err, ErrUnknownOrder):
		httpx.Error(w, http.StatusNotFound, "unknown_order", "order not on the board; refresh and retry")
	case errors.Is(err, order.ErrTerminal):
		httpx.Error(w, http.StatusConflict, "terminal_status", err.Error())
	case errors.As(err, &berr):
		// Backend rejections pass through verbatim.
		httpx.Error(w, http.StatusUnprocessableEntity, "rejected", berr.Message)
	default:
		lg.Error("advance_failed", err, map[string]any{"order_id": id})
		httpx.Error(w, http.StatusBadGateway, "backend_unavailable", "could not reach the backend; try again")
	}
}
