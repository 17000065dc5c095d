package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-shop-orders.git/internal/orders"
	"github.com/ariefcatur/go-shop-orders.git/internal/redisx"
	"github.com/ariefcatur/go-shop-orders.git/internal/users"
)

type OrdersHandler struct {
	Repo           *orders.Repo
	Reserver       *orders.Reserver
	Users          *users.Service
	CreateProducer *orders.Publisher
	StatusProducer *orders.Publisher
	Redis          *redis.Client
	Service        string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	auth := Authenticator(h.Users.Tokens)
	r.With(auth).Post("/orders", h.create)
	r.With(auth).Get("/orders", h.listMine)
	r.With(auth).Get("/orders/{id}", h.getStatus)

	admin := r.With(auth, RequireAdmin(h.Users))
	admin.Get("/orders/all", h.listAll)
	admin.Patch("/orders/{id}", h.updateStatus)
}

type createOrderReq struct {
	ShipTo     json.RawMessage   `json:"shipTo"`
	Contact    json.RawMessage   `json:"contact"`
	TotalPrice int               `json:"totalPrice"`
	OrderList  []orders.LineItem `json:"orderList"`
}

// create runs the reservation sequence and, only when every line item passed,
// persists the order and emits an OrderCreated event.
func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())

	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	failures, err := h.Reserver.Reserve(ctx, req.OrderList)
	if err != nil {
		failErr(w, err)
		return
	}
	if len(failures) > 0 {
		fail(w, http.StatusBadRequest, (&orders.InsufficientStockError{Failures: failures}).Error())
		return
	}

	// Stock is already deducted. A failure past this point leaves the
	// deductions in place; there is no compensation step.
	o, err := h.Repo.CreateOrder(ctx, userID, req.ShipTo, req.Contact, req.TotalPrice, req.OrderList)
	if err != nil {
		failErr(w, err)
		return
	}

	h.CreateProducer.Publish(orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: o.ID,
	}, orders.OrderCreatedPayload{
		OrderID:    o.ID,
		OrderNum:   o.OrderNum,
		UserID:     o.UserID,
		Items:      o.Items,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
	})

	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, o.ID)
	_ = h.Redis.Set(ctx, statusKey, `{"status":"`+string(o.Status)+`"}`, redisx.TTLStatusCache).Err()

	ok(w, map[string]any{"orderNum": o.OrderNum})
}

func (h *OrdersHandler) listMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())
	page := atoiOr(r.URL.Query().Get("page"), 1)
	pageSize := atoiOr(r.URL.Query().Get("pageSize"), 10)

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	os, total, err := h.Repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		failErr(w, err)
		return
	}
	if os == nil {
		os = []orders.Order{}
	}
	ok(w, map[string]any{"data": os, "totalPageNum": totalPageNum(total, pageSize)})
}

func (h *OrdersHandler) listAll(w http.ResponseWriter, r *http.Request) {
	q := orders.ListQuery{
		Page:     atoiOr(r.URL.Query().Get("page"), 1),
		PageSize: atoiOr(r.URL.Query().Get("pageSize"), 10),
		OrderNum: r.URL.Query().Get("ordernum"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	os, total, err := h.Repo.List(ctx, q)
	if err != nil {
		failErr(w, err)
		return
	}
	if os == nil {
		os = []orders.Order{}
	}
	ok(w, map[string]any{"data": os, "totalPageNum": totalPageNum(total, q.PageSize)})
}

// getStatus serves the status from the Redis cache when warm, falling back to
// the database and re-priming the cache.
func (h *OrdersHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		var cached map[string]any
		if json.Unmarshal([]byte(s), &cached) == nil {
			ok(w, cached)
			return
		}
	}

	status, err := h.Repo.GetStatus(ctx, orderID)
	if err != nil {
		failErr(w, err)
		return
	}
	body, _ := json.Marshal(map[string]any{"status": status})
	_ = h.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
	ok(w, map[string]any{"status": status})
}

type updateStatusReq struct {
	Status orders.Status `json:"status"`
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !req.Status.Valid() {
		fail(w, http.StatusBadRequest, "unknown order status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Repo.UpdateStatus(ctx, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		failErr(w, err)
		return
	}

	h.StatusProducer.Publish(orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderStatusChanged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: o.ID,
	}, orders.OrderStatusChangedPayload{
		OrderID:  o.ID,
		OrderNum: o.OrderNum,
		Status:   o.Status,
	})

	ok(w, map[string]any{"data": o})
}
