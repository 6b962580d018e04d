package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffledger/pkg/composables"
)

// WithPool makes the database pool available to handlers through the
// request context. Read handlers run directly on the pool; nothing here
// opens a transaction, so the API only ever sees committed data.
func WithPool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(composables.WithPool(r.Context(), pool))
			next.ServeHTTP(w, r)
		})
	}
}
