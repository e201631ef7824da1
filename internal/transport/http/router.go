// http собирает REST-роутер promo-service.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Venture-Formations/aiprodaily-sub005/internal/transport/http/handlers"
	"github.com/Venture-Formations/aiprodaily-sub005/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.SelectionService, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	// Эндпойнты отбора: POST — вычислить/вернуть готовый, GET — чистое чтение.
	root.Post("/v1/issues/{issue_id}/selection", h.SelectForIssue)
	root.Get("/v1/issues/{issue_id}/selection", h.GetSelection)

	return root
}
