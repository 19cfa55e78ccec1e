package httpserver

import (
	"errors"
	"log"

	"cartkeep/internal/checkout"
	"cartkeep/internal/control"
	"cartkeep/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the wired collaborators for the cart API.
type Deps struct {
	Slots          storage.Opener
	Checkout       checkout.Starter
	Resolver       *control.Resolver
	DefaultCountry string
}

// buildRouter wires routes for the cart API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Slots == nil {
		return nil, errors.New("slot opener required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: false,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	sessions := newSessionRegistry(deps.Slots, deps.Checkout, logger)

	api := router.Group("/", sessionMiddleware(sessions))
	{
		api.GET("/cart", getCartHandler)
		api.POST("/cart/lines", addLineHandler)
		api.PATCH("/cart/lines/:variantId", updateLineHandler)
		api.DELETE("/cart/lines/:variantId", removeLineHandler)
		api.DELETE("/cart", clearCartHandler)
		api.PUT("/cart/drawer", drawerHandler)
		api.POST("/checkout", checkoutHandler(logger))
		if deps.Resolver != nil {
			api.GET("/products/:handle/action", productActionHandler(deps.Resolver, deps.DefaultCountry))
		}
	}

	return router, nil
}
