package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elitecorner/storefront-backend/api/controllers"
	"github.com/elitecorner/storefront-backend/api/middleware"
	"github.com/elitecorner/storefront-backend/internal/cart"
	"github.com/elitecorner/storefront-backend/internal/catalog"
	checkoutsvc "github.com/elitecorner/storefront-backend/internal/checkout"
	"github.com/elitecorner/storefront-backend/internal/discounts"
	"github.com/elitecorner/storefront-backend/internal/orders"
	"github.com/elitecorner/storefront-backend/internal/siteconfig"
	"github.com/elitecorner/storefront-backend/internal/wishlist"
	"github.com/elitecorner/storefront-backend/pkg/config"
	"github.com/elitecorner/storefront-backend/pkg/logger"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         controllers.Pinger
	Redis      controllers.Pinger
	Catalog    catalog.Service
	SiteConfig siteconfig.Service
	Namer      siteconfig.CollectionNamer
	Carts      *cart.Container
	Wishlists  *wishlist.Container
	Discounts  *discounts.Store
	Checkout   checkoutsvc.Service
	Orders     orders.Service
	Metrics    http.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.Metrics == nil {
		deps.Metrics = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", deps.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/search", controllers.SearchProducts(deps.Catalog, logg))
			r.Get("/{slug}", controllers.GetProduct(deps.Catalog, logg))
			r.Get("/{slug}/variant", controllers.ResolveProductVariant(deps.Catalog, logg))
		})

		r.Get("/collections/{slug}", controllers.GetCollection(deps.Catalog, logg))

		r.Route("/config", func(r chi.Router) {
			r.Get("/", controllers.ListSiteConfigSection(deps.SiteConfig, logg))
			r.Get("/navigation", controllers.GetNavigation(deps.SiteConfig, deps.Namer, logg))
			r.Get("/{key}", controllers.GetSiteConfig(deps.SiteConfig, logg))
			r.Put("/{key}", controllers.UpsertSiteConfig(deps.SiteConfig, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Carts, logg))
			r.Post("/items", controllers.AddCartItem(deps.Carts, deps.Catalog, logg))
			r.Patch("/items", controllers.UpdateCartItem(deps.Carts, logg))
			r.Delete("/items", controllers.RemoveCartItem(deps.Carts, logg))
			r.Delete("/", controllers.ClearCart(deps.Carts, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.GetWishlist(deps.Wishlists, logg))
			r.Post("/items", controllers.AddWishlistItem(deps.Wishlists, logg))
			r.Delete("/items/{productID}", controllers.RemoveWishlistItem(deps.Wishlists, logg))
		})

		r.Route("/discount", func(r chi.Router) {
			r.Get("/", controllers.GetPendingDiscount(deps.Discounts, logg))
			r.Post("/", controllers.ApplyDiscount(deps.Discounts, deps.Carts, logg))
			r.Delete("/", controllers.RemovePendingDiscount(deps.Discounts, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", controllers.CheckoutQuote(deps.Checkout, logg))
			r.Post("/validate", controllers.CheckoutValidate(deps.Checkout, logg))
			r.Post("/handoff", controllers.CheckoutHandoff(deps.Checkout, logg))
		})

		r.Get("/orders/{orderNumber}", controllers.GetOrder(deps.Orders, logg))
	})

	return r
}
