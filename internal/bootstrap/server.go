package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"tourdesk/api"
	"tourdesk/config"
	"tourdesk/internal/auth"
	"tourdesk/internal/service/booking"
	"tourdesk/internal/service/catalog"
	"tourdesk/internal/service/users"
)

// Services bundles everything the HTTP surface needs.
type Services struct {
	Bookings booking.BookingUseCase
	Catalog  *catalog.CatalogService
	Users    *users.UserService
	Tokens   *auth.Manager
}

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newHandler(cfg, svc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func newHandler(cfg *config.Config, svc Services) http.Handler {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Static("/uploads", cfg.Storage.RootDir)

	authHandler := api.NewAuthHandler(svc.Users)
	userHandler := api.NewUserHandler(svc.Users)
	bookingHandler := api.NewBookingHandler(svc.Bookings)
	adminHandler := api.NewAdminHandler(svc.Bookings, svc.Users)
	packageHandler := api.NewPackageHandler(svc.Catalog)
	destinationHandler := api.NewDestinationHandler(svc.Catalog)
	categoryHandler := api.NewCategoryHandler(svc.Catalog)

	root := router.Group("/api")

	authHandler.Register(root.Group("/auth"))
	packageHandler.Register(root.Group("/tour-packages"))
	destinationHandler.Register(root.Group("/destinations"))
	categoryHandler.Register(root.Group("/trip-categories"))

	authed := root.Group("", api.AuthMiddleware(svc.Tokens))
	userHandler.Register(authed.Group("/users"))
	bookingHandler.Register(authed.Group("/bookings"))

	admin := authed.Group("/admin", api.RequireAdmin())
	adminHandler.Register(admin)
	packageHandler.RegisterAdmin(admin.Group("/tour-packages"))
	destinationHandler.RegisterAdmin(admin.Group("/destinations"))
	categoryHandler.RegisterAdmin(admin.Group("/trip-categories"))

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
	return cors.New(corsOptions).Handler(router)
}
