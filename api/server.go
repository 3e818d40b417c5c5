/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the console frontend

ROUTE GROUPS:
  /api/customers/*      Customer management and per-customer views
  /api/policies/*       Policy management
  /api/claims/*         Claim review
  /api/payments/*       Premium payments
  /api/notifications/*  Read-state updates
  /api/reports/*        Report documents and exports
  /api/dashboard        Headline statistics
  /api/seed             Demo data (dev only)

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Customer routes
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Post("/", h.CreateCustomer)
			r.Get("/{id}", h.GetCustomer)
			r.Get("/{id}/policies", h.ListCustomerPolicies)
			r.Get("/{id}/claims", h.ListCustomerClaims)
			r.Get("/{id}/payments", h.ListCustomerPayments)
			r.Get("/{id}/notifications", h.ListNotifications)
			r.Post("/{id}/notifications/read-all", h.MarkAllNotificationsRead)
		})

		// Policy routes
		r.Route("/policies", func(r chi.Router) {
			r.Get("/", h.ListPolicies)
			r.Post("/", h.CreatePolicy)
			r.Get("/{id}", h.GetPolicy)
			r.Put("/{id}/status", h.UpdatePolicyStatus)
			r.Get("/{id}/payments", h.ListPolicyPayments)
		})

		// Claim routes
		r.Route("/claims", func(r chi.Router) {
			r.Get("/", h.ListClaims)
			r.Post("/", h.CreateClaim)
			r.Get("/{id}", h.GetClaim)
			r.Put("/{id}/status", h.UpdateClaimStatus)
		})

		// Payment routes
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.ListPayments)
			r.Post("/", h.CreatePayment)
		})

		// Notification routes
		r.Route("/notifications", func(r chi.Router) {
			r.Post("/{id}/read", h.MarkNotificationRead)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/{kind}", h.GetReport)
			r.Get("/{kind}/export", h.ExportReport)
		})

		// Dashboard
		r.Get("/dashboard", h.GetDashboardStats)

		// Demo data
		r.Post("/seed", h.LoadSeedData)
	})

	return r
}
