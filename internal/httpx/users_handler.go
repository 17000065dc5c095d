package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-shop-orders.git/internal/users"
)

type UsersHandler struct {
	Svc *users.Service
}

func (h *UsersHandler) Register(r *chi.Mux) {
	r.Post("/users", h.create)
	r.Post("/auth/login", h.login)
	r.With(Authenticator(h.Svc.Tokens)).Get("/users/me", h.me)
}

type createUserReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *UsersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, err := h.Svc.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		failErr(w, err)
		return
	}
	ok(w, map[string]any{"user": u})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UsersHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, token, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		failErr(w, err)
		return
	}
	ok(w, map[string]any{"user": u, "token": token})
}

func (h *UsersHandler) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, err := h.Svc.CurrentUser(ctx, userID)
	if err != nil {
		failErr(w, err)
		return
	}
	ok(w, map[string]any{"user": u})
}
