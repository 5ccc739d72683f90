package storefront_http

import (
	"context"
	"net/http"
	"strings"

	"github.com/lavandel/flower_storefront/internal/domain/models"
)

type localeCtxKey struct{}

// withLocale resolves the request locale from the leading path segment
// ("/ru/catalog/bouquets") and strips it before routing. Requests
// without a recognized prefix run under the default locale.
func (h *Handler) withLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := h.locales.Default

		trimmed := strings.TrimPrefix(r.URL.Path, "/")
		if segment, rest, found := strings.Cut(trimmed, "/"); found || segment != "" {
			if h.locales.IsSupported(segment) {
				locale = segment
				r.URL.Path = "/" + rest
			}
		}

		ctx := context.WithValue(r.Context(), localeCtxKey{}, models.Locale(locale))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func localeFromContext(ctx context.Context) models.Locale {
	if locale, ok := ctx.Value(localeCtxKey{}).(models.Locale); ok {
		return locale
	}
	return models.LocaleRU
}
