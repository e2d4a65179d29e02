package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olivercruz/dishpatch-backend/api/controllers"
	cartcontrollers "github.com/olivercruz/dishpatch-backend/api/controllers/cart"
	"github.com/olivercruz/dishpatch-backend/api/middleware"
	"github.com/olivercruz/dishpatch-backend/internal/cart"
	"github.com/olivercruz/dishpatch-backend/internal/menu"
	"github.com/olivercruz/dishpatch-backend/internal/restaurants"
	"github.com/olivercruz/dishpatch-backend/pkg/config"
	"github.com/olivercruz/dishpatch-backend/pkg/db"
	"github.com/olivercruz/dishpatch-backend/pkg/logger"
	"github.com/olivercruz/dishpatch-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	restaurantService restaurants.Service,
	menuService menu.Service,
	cartService cart.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/restaurants", func(r chi.Router) {
		r.Get("/", controllers.RestaurantsList(restaurantService, logg))
		r.Get("/{restaurantID}", controllers.RestaurantFetch(restaurantService, logg))
		r.Get("/{restaurantID}/menu", controllers.RestaurantMenu(menuService, logg))

		r.Route("/{restaurantID}/cart", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/", cartcontrollers.CartFetch(cartService, logg))
			r.Delete("/", cartcontrollers.CartClear(cartService, logg))
			r.Get("/summary", cartcontrollers.CartSummary(cartService, logg))
			r.Post("/lines", cartcontrollers.CartAddLine(cartService, logg))
			r.Patch("/lines/{lineID}", cartcontrollers.CartUpdateLine(cartService, logg))
			r.Delete("/lines/{lineID}", cartcontrollers.CartRemoveLine(cartService, logg))
			r.Post("/checkout", cartcontrollers.CartCheckout(cartService, logg))
		})
	})

	r.With(middleware.Auth(cfg.JWT, logg)).
		Get("/api/v1/carts", cartcontrollers.CartsList(cartService, logg))

	return r
}
