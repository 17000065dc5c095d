package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-shop-orders.git/internal/catalog"
	"github.com/ariefcatur/go-shop-orders.git/internal/users"
)

type ProductsHandler struct {
	Repo  *catalog.Repo
	Users *users.Service
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)

	admin := r.With(Authenticator(h.Users.Tokens), RequireAdmin(h.Users))
	admin.Post("/products", h.create)
	admin.Put("/products/{id}", h.update)
	admin.Delete("/products/{id}", h.delete)
}

type productReq struct {
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	Sizes       []string       `json:"size"`
	Image       string         `json:"image"`
	Category    []string       `json:"category"`
	Description string         `json:"description"`
	Price       int            `json:"price"`
	Stock       map[string]int `json:"stock"`
	Status      string         `json:"status"`
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.SKU == "" || req.Name == "" {
		fail(w, http.StatusBadRequest, "sku and name are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p := &catalog.Product{
		SKU: req.SKU, Name: req.Name, Sizes: req.Sizes, Image: req.Image,
		Category: req.Category, Description: req.Description, Price: req.Price,
		Stock: req.Stock, Status: req.Status,
	}
	if err := h.Repo.InsertProduct(ctx, p); err != nil {
		failErr(w, err)
		return
	}
	ok(w, map[string]any{"product": p})
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	q := catalog.ListQuery{
		Page:     atoiOr(r.URL.Query().Get("page"), 1),
		PageSize: atoiOr(r.URL.Query().Get("pageSize"), 5),
		Name:     r.URL.Query().Get("name"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, total, err := h.Repo.ListProducts(ctx, q)
	if err != nil {
		failErr(w, err)
		return
	}
	if ps == nil {
		ps = []catalog.Product{}
	}
	ok(w, map[string]any{"data": ps, "totalPageNum": totalPageNum(total, q.PageSize)})
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Repo.FindProductByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		failErr(w, err)
		return
	}
	ok(w, map[string]any{"data": p})
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Repo.FindProductByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		failErr(w, err)
		return
	}
	p.SKU, p.Name, p.Sizes, p.Image = req.SKU, req.Name, req.Sizes, req.Image
	p.Category, p.Description, p.Price = req.Category, req.Description, req.Price
	p.Stock, p.Status = req.Stock, req.Status
	if err := h.Repo.SaveProduct(ctx, p); err != nil {
		failErr(w, err)
		return
	}
	ok(w, map[string]any{"data": p})
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.SoftDeleteProduct(ctx, chi.URLParam(r, "id")); err != nil {
		failErr(w, err)
		return
	}
	ok(w, nil)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
