package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rootbits-api/internal/audit"
	"github.com/BruksfildServices01/rootbits-api/internal/auth"
	"github.com/BruksfildServices01/rootbits-api/internal/config"
	"github.com/BruksfildServices01/rootbits-api/internal/domain/access"
	"github.com/BruksfildServices01/rootbits-api/internal/handlers"
	"github.com/BruksfildServices01/rootbits-api/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/rootbits-api/internal/infra/repository"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/metrics"
	"github.com/BruksfildServices01/rootbits-api/internal/middleware"
	"github.com/BruksfildServices01/rootbits-api/internal/notify"
	"github.com/BruksfildServices01/rootbits-api/internal/ratelimit"
	ucTicket "github.com/BruksfildServices01/rootbits-api/internal/usecase/ticket"
	"github.com/BruksfildServices01/rootbits-api/internal/validators"
)

// Deps are the process-wide singletons the router is built from.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *logger.Logger
	Audit  *audit.Dispatcher

	// Registry enables /metrics when set.
	Registry *prometheus.Registry
	// RateLimit enables login throttling when set.
	RateLimit ratelimit.Store
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	validators.Setup()

	var reg prometheus.Registerer
	if d.Registry != nil {
		reg = d.Registry
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.Recovery(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.Metrics(metrics.NewHTTPMetrics(reg)),
		middleware.CORSMiddleware(cfg.HTTP.CORSOrigins()),
		middleware.BodyLimit(cfg.HTTP.MaxBodyBytes()),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	tokens := auth.NewTokens(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	gate := middleware.NewGate(d.DB, tokens, d.Log)
	notifier := notify.NewService(d.DB, d.Log, metrics.NewNotificationMetrics(reg))
	ticketRepo := infraRepo.NewTicketGormRepository(d.DB)

	// ======================================================
	// USE CASES (TICKETS)
	// ======================================================
	createTicketUC := ucTicket.NewCreateTicket(ticketRepo, notifier, d.Audit)
	updateTicketUC := ucTicket.NewUpdateTicket(ticketRepo, notifier, d.Audit)
	commentTicketUC := ucTicket.NewAddComment(ticketRepo, notifier)
	deleteTicketUC := ucTicket.NewDeleteTicket(ticketRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, tokens, d.Log)
	userHandler := handlers.NewUserHandler(d.DB, notifier, d.Audit, d.Log)
	clientHandler := handlers.NewClientHandler(d.DB, notifier, d.Audit, d.Log)
	ticketHandler := handlers.NewTicketHandler(
		ticketRepo,
		createTicketUC,
		updateTicketUC,
		commentTicketUC,
		deleteTicketUC,
		d.Log,
	)
	postHandler := handlers.NewPostHandler(d.DB, notifier, d.Audit, d.Log)
	contactHandler := handlers.NewContactHandler(d.DB, notifier, d.Log)
	notificationHandler := handlers.NewNotificationHandler(notifier, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Log)

	// ======================================================
	// HEALTH / METRICS
	// ======================================================
	health := func(c *gin.Context) {
		httpresp.OK(c, gin.H{"status": "ok", "app": cfg.App.Name})
	}
	r.GET("/health", health)
	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.GET("", apiIndex(cfg.App.Name))
	api.GET("/health", health)

	authed := gate.Auth()
	can := middleware.RequireRole

	// ------------------------------
	// AUTH
	// ------------------------------
	authGroup := api.Group("/auth")
	{
		loginPolicy := middleware.NewRateLimitPolicy(
			"login",
			cfg.RateLimit.Window,
			cfg.RateLimit.IPLimit,
			cfg.RateLimit.EmailLimit,
		)
		authGroup.POST("/login", middleware.LoginRateLimit(loginPolicy, d.RateLimit, d.Log), authHandler.Login)
		authGroup.GET("/me", authed, authHandler.Me)
		authGroup.PUT("/me", authed, authHandler.UpdateMe)
		authGroup.PUT("/alterar-senha", authed, authHandler.ChangePassword)
	}

	// ------------------------------
	// USUARIOS
	// ------------------------------
	users := api.Group("/usuarios", authed)
	{
		users.GET("", can(access.UsersList), userHandler.List)
		users.GET("/roles", can(access.UsersRoles), userHandler.Roles)
		users.GET("/:id", can(access.UsersGet), userHandler.Get)
		users.POST("", can(access.UsersCreate), userHandler.Create)
		users.PUT("/:id", can(access.UsersUpdate), userHandler.Update)
		users.DELETE("/:id", can(access.UsersDelete), userHandler.Delete)
	}

	// ------------------------------
	// POSTS (leitura pública)
	// ------------------------------
	posts := api.Group("/posts")
	{
		posts.GET("", gate.OptionalAuth(), postHandler.List)
		posts.GET("/:id", gate.OptionalAuth(), postHandler.Get)
		posts.POST("", authed, can(access.PostsCreate), postHandler.Create)
		posts.PUT("/:id", authed, can(access.PostsUpdate), postHandler.Update)
		posts.DELETE("/:id", authed, can(access.PostsDelete), postHandler.Delete)
	}

	// ------------------------------
	// CLIENTES
	// ------------------------------
	clients := api.Group("/clientes", authed)
	{
		clients.GET("/tipos-site", clientHandler.TiposSite)
		clients.GET("/status-venda", clientHandler.StatusVenda)
		clients.GET("/formas-pagamento", clientHandler.FormasPagamento)
		clients.GET("/origens-lead", clientHandler.OrigensLead)

		clients.GET("", can(access.ClientsList), clientHandler.List)
		clients.GET("/:id", can(access.ClientsGet), clientHandler.Get)
		clients.POST("", can(access.ClientsCreate), clientHandler.Create)
		clients.PUT("/:id", can(access.ClientsUpdate), clientHandler.Update)
		clients.DELETE("/:id", can(access.ClientsDelete), clientHandler.Delete)
	}

	// ------------------------------
	// CHAMADOS
	// ------------------------------
	tickets := api.Group("/chamados", authed)
	{
		tickets.GET("/status", ticketHandler.Statuses)
		tickets.GET("/prioridades", ticketHandler.Prioridades)
		tickets.GET("/tipos", ticketHandler.Tipos)

		tickets.GET("", can(access.TicketsList), ticketHandler.List)
		tickets.GET("/:id", can(access.TicketsGet), ticketHandler.Get)
		tickets.POST("", can(access.TicketsCreate), ticketHandler.Create)
		tickets.PUT("/:id", can(access.TicketsUpdate), ticketHandler.Update)
		tickets.POST("/:id/comentarios", can(access.TicketsComment), ticketHandler.AddComment)
		tickets.DELETE("/:id", can(access.TicketsDelete), ticketHandler.Delete)
	}

	// ------------------------------
	// CONTATOS (criação pública)
	// ------------------------------
	contacts := api.Group("/contatos")
	{
		contacts.POST("", contactHandler.Create)

		contacts.GET("", authed, can(access.ContactsList), contactHandler.List)
		contacts.GET("/unread-count", authed, can(access.ContactsUnreadCount), contactHandler.UnreadCount)
		contacts.PUT("/marcar-todos-lidos", authed, can(access.ContactsMarkAllRead), contactHandler.MarkAllRead)
		contacts.GET("/:id", authed, can(access.ContactsGet), contactHandler.Get)
		contacts.PUT("/:id", authed, can(access.ContactsUpdate), contactHandler.Update)
		contacts.PUT("/:id/marcar-lido", authed, can(access.ContactsMarkRead), contactHandler.MarkRead)
	}

	// ------------------------------
	// NOTIFICACOES (feed do usuário)
	// ------------------------------
	notifications := api.Group("/notificacoes", authed)
	{
		notifications.GET("", notificationHandler.List)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
		notifications.PUT("/marcar-todas-lidas", notificationHandler.MarkAllRead)
		notifications.PUT("/:id/marcar-lida", notificationHandler.MarkRead)
	}

	// ------------------------------
	// AUDITORIA
	// ------------------------------
	api.GET("/auditoria", authed, can(access.AuditList), auditLogsHandler.List)
}

func apiIndex(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		httpresp.OK(c, gin.H{
			"app": name,
			"endpoints": []string{
				"/api/auth",
				"/api/usuarios",
				"/api/posts",
				"/api/clientes",
				"/api/chamados",
				"/api/contatos",
				"/api/notificacoes",
				"/api/auditoria",
			},
		})
	}
}
