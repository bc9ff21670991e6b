package main

import (
	"net/http"

	"clientdesk/internal/auth"
	"clientdesk/internal/gate"
	"clientdesk/internal/handlers"
	"clientdesk/internal/httpx"
	"clientdesk/internal/policy"
	"clientdesk/internal/services"
	"clientdesk/internal/storage"
	"clientdesk/internal/view"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App is the main application handler wiring routes to handlers.
type App struct {
	mux      *http.ServeMux
	db       *gorm.DB
	authGate *policy.AuthGate
	log      *logrus.Logger
}

// NewApp wires the gate, services and handlers and builds the route table.
func NewApp(db *gorm.DB, authGate *policy.AuthGate, store storage.ObjectStore, fileRoot string, metricsHandler http.Handler, log *logrus.Logger) *App {
	app := &App{
		mux:      http.NewServeMux(),
		db:       db,
		authGate: authGate,
		log:      log,
	}

	// Template resolvers: show/hide controls by role permission.
	view.SetCanResolver(func(r *http.Request, resource, action string) bool {
		return authGate.CanRole(r.Context(), gate.Action(action), resource)
	})
	view.SetIsAdminResolver(func(r *http.Request) bool {
		return authGate.IsAdmin(r.Context())
	})
	view.SetRoleNameResolver(func(r *http.Request) string {
		return authGate.RoleName(r.Context())
	})

	assignment := policy.NewAssignmentChecker(db, authGate)
	docSvc := services.NewDocumentService(db, store, log)

	authHandler := handlers.NewAuthHandler(db, log)
	dashboard := handlers.NewDashboardHandler(db, log)
	clients := handlers.NewClientHandler(db, authGate, assignment, log)
	contacts := handlers.NewContactHandler(db, clients, log)
	documents := handlers.NewDocumentHandler(db, authGate, docSvc, clients, log)
	quotations := handlers.NewQuotationHandler(db, authGate, log)
	adminEmployees := handlers.NewAdminEmployeeHandler(db, authGate, log)

	app.setupRoutes(authHandler, dashboard, clients, contacts, documents, quotations, adminEmployees, fileRoot, metricsHandler)
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth.Middleware(a.mux).ServeHTTP(w, r)
}

func (a *App) setupRoutes(
	ah *handlers.AuthHandler,
	dash *handlers.DashboardHandler,
	ch *handlers.ClientHandler,
	coh *handlers.ContactHandler,
	dh *handlers.DocumentHandler,
	qh *handlers.QuotationHandler,
	aeh *handlers.AdminEmployeeHandler,
	fileRoot string,
	metricsHandler http.Handler,
) {
	// Public routes
	a.mux.HandleFunc("GET /login", ah.Login)
	a.mux.HandleFunc("POST /login", ah.Login)
	a.mux.HandleFunc("GET /logout", ah.Logout)
	a.mux.HandleFunc("POST /logout", ah.Logout)
	a.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	// Authenticated routes
	a.mux.Handle("GET /dashboard", a.requireAuth(http.HandlerFunc(dash.Show)))

	// Clients
	a.mux.Handle("GET /clients",
		a.requireAuth(a.requirePermission("client", gate.ActionList)(http.HandlerFunc(ch.List))))
	a.mux.Handle("GET /clients/{id}",
		a.requireAuth(a.requirePermission("client", gate.ActionView)(http.HandlerFunc(ch.View))))
	a.mux.Handle("POST /clients/{id}/complete",
		a.requireAuth(a.requirePermission("client", policy.ActionComplete)(http.HandlerFunc(ch.Complete))))

	// Contact persons
	a.mux.Handle("POST /clients/{id}/contacts",
		a.requireAuth(a.requirePermission("contact", gate.ActionCreate)(http.HandlerFunc(coh.Create))))
	a.mux.Handle("POST /contacts/{id}",
		a.requireAuth(a.requirePermission("contact", gate.ActionUpdate)(http.HandlerFunc(coh.Update))))

	// Documents
	a.mux.Handle("POST /clients/{id}/documents",
		a.requireAuth(a.requirePermission("document", gate.ActionCreate)(http.HandlerFunc(dh.Upload))))
	a.mux.Handle("POST /documents/{id}/delete",
		a.requireAuth(a.requirePermission("document", gate.ActionDelete)(http.HandlerFunc(dh.Delete))))
	a.mux.Handle("GET /documents/upload",
		a.requireAuth(a.requirePermission("document", gate.ActionCreate)(http.HandlerFunc(dh.UploadForm))))
	a.mux.Handle("POST /documents/upload",
		a.requireAuth(a.requirePermission("document", gate.ActionCreate)(http.HandlerFunc(dh.UploadForm))))

	// Admin: employee role assignment
	a.mux.Handle("GET /admin/employees",
		a.requireAuth(a.requirePermission("employee", gate.ActionList)(http.HandlerFunc(aeh.List))))
	a.mux.Handle("POST /admin/employees/assign-role",
		a.requireAuth(a.requirePermission("employee", gate.ActionUpdate)(http.HandlerFunc(aeh.AssignRole))))

	// Quotations
	a.mux.Handle("GET /quotations",
		a.requireAuth(a.requirePermission("quotation", gate.ActionList)(http.HandlerFunc(qh.List))))

	// Stored files ("public URLs" of the disk store)
	a.mux.Handle("GET /files/", a.requireAuth(cacheControl(
		http.StripPrefix("/files/", http.FileServer(http.Dir(fileRoot))))))

	// Operational endpoints
	a.mux.Handle("GET /metrics", metricsHandler)
	a.mux.HandleFunc("GET /healthz", a.healthz)

	// Static files
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
}

// healthz answers liveness probes, including a database ping.
func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "database unreachable", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) requireAuth(next http.Handler) http.Handler {
	return auth.RequireAuth(next)
}

func (a *App) requirePermission(resource string, action gate.Action) func(http.Handler) http.Handler {
	return a.authGate.RequirePermission(resource, action)
}

// cacheControl applies the cache policy documents are uploaded with.
func cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "private, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
