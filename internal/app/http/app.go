package httpapp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lavandel/flower_storefront/internal/config"
	storefront_http "github.com/lavandel/flower_storefront/internal/delivery/http"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

type App struct {
	log        logger.Logger
	httpServer *http.Server
	port       int
}

func NewApp(
	log logger.Logger,
	catalogService storefront_http.Catalog,
	cartService storefront_http.Cart,
	checkoutService storefront_http.Checkout,
	adminService storefront_http.Admin,
	locales config.LocaleConfig,
	port int,
) *App {
	handler := storefront_http.NewHandler(log, catalogService, cartService, checkoutService, adminService, locales)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.InitRoutes(),
	}

	return &App{
		log:        log,
		httpServer: httpServer,
		port:       port,
	}
}

func (a *App) RunWithPanic() {
	if err := a.Run(); err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("failed to run http server: %v", err))
	}
}

func (a *App) Run() error {
	const op = "httpapp.run"

	a.log.Info(op, logger.Int("port", a.port))

	return a.httpServer.ListenAndServe()
}

func (a *App) Stop(ctx context.Context) error {
	const op = "httpapp.stop"

	a.log.Info(op)

	return a.httpServer.Shutdown(ctx)
}
