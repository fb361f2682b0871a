package common

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hostlink-ma/hostlink-services/api/internal/directory/domain"
)

// KindParam parses the {kind} route parameter, accepting plural and French aliases.
func KindParam(r *http.Request) (domain.Kind, error) {
	return domain.ParseKind(chi.URLParam(r, "kind"))
}

// IDParam returns the trimmed {id} route parameter.
func IDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

// PageParams reads ?page and ?limit with defaults 1 and defaultLimit.
func PageParams(r *http.Request, defaultLimit int) (page, limit int) {
	query := r.URL.Query()
	page, _ = ParsePositiveInt(query.Get("page"), 1)
	limit, _ = ParsePositiveInt(query.Get("limit"), defaultLimit)
	return page, limit
}
