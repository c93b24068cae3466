package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tacocrew/tacocrew-backend/api/controllers"
	"github.com/tacocrew/tacocrew-backend/api/middleware"
	grouporder "github.com/tacocrew/tacocrew-backend/internal/grouporders"
	orgsvc "github.com/tacocrew/tacocrew-backend/internal/organizations"
	stocksvc "github.com/tacocrew/tacocrew-backend/internal/stock"
	userorder "github.com/tacocrew/tacocrew-backend/internal/userorders"
	usersvc "github.com/tacocrew/tacocrew-backend/internal/users"
	"github.com/tacocrew/tacocrew-backend/pkg/config"
	"github.com/tacocrew/tacocrew-backend/pkg/db"
	"github.com/tacocrew/tacocrew-backend/pkg/logger"
	"github.com/tacocrew/tacocrew-backend/pkg/metrics"
	"github.com/tacocrew/tacocrew-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	userService usersvc.Service,
	organizationService orgsvc.Service,
	groupOrderService grouporder.Service,
	userOrderService userorder.Service,
	stockService stocksvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	createUserPolicy := middleware.NewRateLimitPolicy(
		"create_user",
		cfg.RateLimit.CreateUserWindow,
		cfg.RateLimit.CreateUserIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.RateLimit(createUserPolicy, redisClient, logg)).
			Post("/users", controllers.UserCreate(userService, logg))
		r.Get("/stock", controllers.StockGet(stockService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(redisClient, logg))

			r.Get("/users/me", controllers.UserMe(userService, logg))

			r.Route("/organizations", func(r chi.Router) {
				r.Post("/", controllers.OrganizationCreate(organizationService, logg))
				r.Get("/", controllers.OrganizationListMine(organizationService, logg))
				r.Get("/{orgId}", controllers.OrganizationGet(organizationService, logg))
				r.Post("/{orgId}/join", controllers.OrganizationJoin(organizationService, logg))
				r.Post("/{orgId}/members/{userId}/approve", controllers.OrganizationApproveMember(organizationService, logg))
				r.Delete("/{orgId}/members/{userId}", controllers.OrganizationRemoveMember(organizationService, logg))
			})

			r.Route("/group-orders", func(r chi.Router) {
				r.Post("/", controllers.GroupOrderCreate(groupOrderService, logg))
				r.Get("/", controllers.GroupOrderList(groupOrderService, logg))
				r.Get("/{groupOrderId}", controllers.GroupOrderGet(groupOrderService, logg))
				r.Delete("/{groupOrderId}", controllers.GroupOrderDelete(groupOrderService, logg))
				r.Post("/{groupOrderId}/submit", controllers.GroupOrderSubmit(groupOrderService, logg))
				r.Get("/{groupOrderId}/user-orders", controllers.GroupOrderDetail(groupOrderService, logg))
				r.Put("/{groupOrderId}/user-orders", controllers.UserOrderUpsert(userOrderService, logg))
				r.Get("/{groupOrderId}/user-orders/me", controllers.UserOrderMine(userOrderService, logg))
				r.Delete("/{groupOrderId}/user-orders/me", controllers.UserOrderDelete(userOrderService, logg))
			})

			r.Get("/user-orders/{userOrderId}", controllers.UserOrderGet(userOrderService, logg))
		})
	})

	// Compat surface for clients that predate token auth. The X-Username
	// header is accepted as-is.
	r.Route("/api/compat", func(r chi.Router) {
		r.Use(middleware.UsernameAuth(userService, logg))

		r.Route("/group-orders/{groupOrderId}/user-orders", func(r chi.Router) {
			r.Put("/", controllers.UserOrderUpsert(userOrderService, logg))
			r.Get("/me", controllers.UserOrderMine(userOrderService, logg))
			r.Delete("/me", controllers.UserOrderDelete(userOrderService, logg))
		})
		r.Get("/user-orders/{userOrderId}", controllers.UserOrderGet(userOrderService, logg))
	})

	return r
}
