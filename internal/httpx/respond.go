package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-shop-orders.git/internal/catalog"
	"github.com/ariefcatur/go-shop-orders.git/internal/orders"
	"github.com/ariefcatur/go-shop-orders.git/internal/users"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ok writes the uniform success envelope; extra fields are merged next to
// "status":"ok".
func ok(w http.ResponseWriter, extra map[string]any) {
	body := map[string]any{"status": "ok"}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func fail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"status": "fail", "error": msg})
}

// failErr maps domain errors onto status codes; everything ends up in the
// same {status:"fail", error} shape.
func failErr(w http.ResponseWriter, err error) {
	var insufficient *orders.InsufficientStockError
	var commit *orders.CommitError
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, users.ErrUserNotFound):
		fail(w, http.StatusNotFound, err.Error())
	case errors.As(err, &insufficient),
		errors.Is(err, catalog.ErrSKUTaken),
		errors.Is(err, users.ErrEmailTaken),
		errors.Is(err, users.ErrInvalidCredentials):
		fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, users.ErrNotAdmin):
		fail(w, http.StatusForbidden, err.Error())
	case errors.As(err, &commit):
		fail(w, http.StatusInternalServerError, err.Error())
	default:
		fail(w, http.StatusInternalServerError, err.Error())
	}
}

func totalPageNum(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
