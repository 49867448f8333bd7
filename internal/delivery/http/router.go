package http

import (
	"net/http"

	"clinic-management-api/internal/delivery/http/handler"
	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	roleHandler          *handler.RoleHandler
	userHandler          *handler.UserHandler
	patientHandler       *handler.PatientHandler
	staffHandler         *handler.StaffHandler
	appointmentHandler   *handler.AppointmentHandler
	inventoryHandler     *handler.InventoryHandler
	invoiceHandler       *handler.InvoiceHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	roleHandler *handler.RoleHandler,
	userHandler *handler.UserHandler,
	patientHandler *handler.PatientHandler,
	staffHandler *handler.StaffHandler,
	appointmentHandler *handler.AppointmentHandler,
	inventoryHandler *handler.InventoryHandler,
	invoiceHandler *handler.InvoiceHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	permissionMiddleware *middleware.PermissionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		roleHandler:          roleHandler,
		userHandler:          userHandler,
		patientHandler:       patientHandler,
		staffHandler:         staffHandler,
		appointmentHandler:   appointmentHandler,
		inventoryHandler:     inventoryHandler,
		invoiceHandler:       invoiceHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		permissionMiddleware: permissionMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Everything below requires a valid access token plus the permission
	// named on the route. Permissions are resolved per request, never from
	// token claims, so role edits take effect immediately.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Role management
	protected.Handle("/roles", r.guarded(entity.PermissionCreateRole, r.roleHandler.Create)).Methods(http.MethodPost)
	protected.Handle("/roles", r.guarded(entity.PermissionReadRole, r.roleHandler.GetAll)).Methods(http.MethodGet)
	protected.Handle("/roles/{id}", r.guarded(entity.PermissionReadRole, r.roleHandler.GetByID)).Methods(http.MethodGet)
	protected.Handle("/roles/{id}", r.guarded(entity.PermissionUpdateRole, r.roleHandler.Update)).Methods(http.MethodPut)
	protected.Handle("/roles/{id}", r.guarded(entity.PermissionDeleteRole, r.roleHandler.Delete)).Methods(http.MethodDelete)

	// User management
	protected.Handle("/users", r.guarded(entity.PermissionCreateUser, r.userHandler.Create)).Methods(http.MethodPost)
	protected.Handle("/users", r.guarded(entity.PermissionReadUser, r.userHandler.GetAll)).Methods(http.MethodGet)
	protected.Handle("/users/{id}", r.guarded(entity.PermissionReadUser, r.userHandler.GetByID)).Methods(http.MethodGet)
	protected.Handle("/users/{id}", r.guarded(entity.PermissionUpdateUser, r.userHandler.Update)).Methods(http.MethodPut)
	protected.Handle("/users/{id}", r.guarded(entity.PermissionDeleteUser, r.userHandler.Delete)).Methods(http.MethodDelete)

	// Patient records
	protected.Handle("/patients", r.guarded(entity.PermissionCreatePatient, r.patientHandler.Create)).Methods(http.MethodPost)
	protected.Handle("/patients", r.guarded(entity.PermissionReadPatient, r.patientHandler.GetAll)).Methods(http.MethodGet)
	protected.Handle("/patients/{id}", r.guarded(entity.PermissionReadPatient, r.patientHandler.GetByID)).Methods(http.MethodGet)
	protected.Handle("/patients/{id}", r.guarded(entity.PermissionUpdatePatient, r.patientHandler.Update)).Methods(http.MethodPut)
	protected.Handle("/patients/{id}", r.guarded(entity.PermissionDeletePatient, r.patientHandler.Delete)).Methods(http.MethodDelete)

	// Staff management
	protected.Handle("/staff", r.guarded(entity.PermissionCreateStaff, r.staffHandler.Create)).Methods(http.MethodPost)
	protected.Handle("/staff", r.guarded(entity.PermissionReadStaff, r.staffHandler.GetAll)).Methods(http.MethodGet)
	protected.Handle("/staff/{id}", r.guarded(entity.PermissionReadStaff, r.staffHandler.GetByID)).Methods(http.MethodGet)
	protected.Handle("/staff/{id}", r.guarded(entity.PermissionUpdateStaff, r.staffHandler.Update)).Methods(http.MethodPut)
	protected.Handle("/staff/{id}", r.guarded(entity.PermissionDeleteStaff, r.staffHandler.Delete)).Methods(http.MethodDelete)

	// Appointments
	protected.Handle("/appointments", r.guarded(entity.PermissionCreateAppointment, r.appointmentHandler.Create)).Methods(http.MethodPost)
	protected.Handle("/appointments", r.guarded(entity.PermissionReadAppointment, r.appointmentHandler.GetAll)).Methods(http.MethodGet)
	protected.Handle("/appointments/{id}", r.guarded(entity.PermissionReadAppointment, r.appointmentHandler.GetByID)).Methods(http.MethodGet)
	protected.Handle("/appointments/{id}", r.guarded(entity.PermissionUpdateAppointment, r.appointmentHandler.Update)).Methods(http.MethodPut)
	protected.Handle("/appointments/{id}", r.guarded(entity.PermissionDeleteAppointment, r.appointmentHandler.Delete)).Methods(http.MethodDelete)

	// Inventory
	protected.Handle("/inventory", r.guarded(entity.PermissionCreateInventory, r.inventoryHandler.Create)).Methods(http.MethodPost)
	protected.Handle("/inventory", r.guarded(entity.PermissionReadInventory, r.inventoryHandler.GetAll)).Methods(http.MethodGet)
	protected.Handle("/inventory/{id}", r.guarded(entity.PermissionReadInventory, r.inventoryHandler.GetByID)).Methods(http.MethodGet)
	protected.Handle("/inventory/{id}", r.guarded(entity.PermissionUpdateInventory, r.inventoryHandler.Update)).Methods(http.MethodPut)
	protected.Handle("/inventory/{id}", r.guarded(entity.PermissionDeleteInventory, r.inventoryHandler.Delete)).Methods(http.MethodDelete)
	protected.Handle("/inventory/{id}/adjust-stock", r.guarded(entity.PermissionUpdateInventory, r.inventoryHandler.AdjustStock)).Methods(http.MethodPost)
	protected.Handle("/inventory/{id}/usage-logs", r.guarded(entity.PermissionReadInventory, r.inventoryHandler.GetUsageLogs)).Methods(http.MethodGet)

	// Invoices
	protected.Handle("/invoices", r.guarded(entity.PermissionCreateInvoice, r.invoiceHandler.Create)).Methods(http.MethodPost)
	protected.Handle("/invoices", r.guarded(entity.PermissionReadInvoice, r.invoiceHandler.GetAll)).Methods(http.MethodGet)
	protected.Handle("/invoices/{id}", r.guarded(entity.PermissionReadInvoice, r.invoiceHandler.GetByID)).Methods(http.MethodGet)
	protected.Handle("/invoices/{id}", r.guarded(entity.PermissionUpdateInvoice, r.invoiceHandler.Update)).Methods(http.MethodPut)
	protected.Handle("/invoices/{id}", r.guarded(entity.PermissionDeleteInvoice, r.invoiceHandler.Delete)).Methods(http.MethodDelete)

	// Audit logs
	protected.Handle("/audit-logs", r.guarded(entity.PermissionReadAuditLog, r.auditLogHandler.GetAll)).Methods(http.MethodGet)
	protected.Handle("/audit-logs/{id}", r.guarded(entity.PermissionReadAuditLog, r.auditLogHandler.GetByID)).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) guarded(permission string, h http.HandlerFunc) http.Handler {
	return r.permissionMiddleware.Require(permission)(h)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
