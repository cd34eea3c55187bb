package main

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"problem-solver/internal/handlers"
	"problem-solver/internal/middleware"
)

type router struct {
	authMw            *middleware.AuthMiddleware
	auditMw           *middleware.AuditMiddleware
	submissionHandler *handlers.SubmissionHandler
	adminHandler      *handlers.AdminHandler
	authHandler       *handlers.AuthHandler
	auditHandler      *handlers.AuditHandler
	healthHandler     *handlers.HealthHandler
}

// admin requires a session token and, when action is set, records an audit entry
func (rt *router) admin(action string, h http.HandlerFunc) http.Handler {
	var next http.Handler = h
	if action != "" {
		next = rt.auditMw.Log(action, "submission")(next)
	}
	return rt.authMw.Authenticate(next)
}

func (rt *router) mux() *http.ServeMux {
	mux := http.NewServeMux()
	api := handlers.APIBasePath
	admin := handlers.AdminAPIBasePath

	// Public routes
	mux.HandleFunc("POST "+api+"/submissions", rt.submissionHandler.Create)

	// Admin authentication
	mux.HandleFunc("POST "+admin+"/auth/login", rt.authHandler.Login)
	mux.Handle("POST "+admin+"/auth/logout", rt.authMw.Authenticate(http.HandlerFunc(rt.authHandler.Logout)))

	// Admin submission routes
	mux.Handle("GET "+admin+"/submissions", rt.admin("", rt.adminHandler.ListSubmissions))
	mux.Handle("GET "+admin+"/submissions/{id}", rt.admin("", rt.adminHandler.GetSubmission))
	mux.Handle("PUT "+admin+"/submissions/{id}/status", rt.admin(handlers.AuditActionStatusUpdate, rt.adminHandler.UpdateStatus))
	mux.Handle("POST "+admin+"/submissions/{id}/generate", rt.admin(handlers.AuditActionGenerate, rt.adminHandler.GenerateReport))
	mux.Handle("POST "+admin+"/submissions/{id}/dispatch", rt.admin(handlers.AuditActionDispatch, rt.adminHandler.DispatchReport))
	mux.Handle("GET "+admin+"/submissions/{id}/report", rt.admin("", rt.adminHandler.GetReport))
	mux.Handle("POST "+admin+"/submissions/{id}/notes", rt.admin(handlers.AuditActionNoteAdd, rt.adminHandler.AddNote))
	mux.Handle("GET "+admin+"/submissions/{id}/notes", rt.admin("", rt.adminHandler.ListNotes))
	mux.Handle("GET "+admin+"/audit-logs", rt.admin("", rt.auditHandler.ListAuditLogs))

	// Health check endpoint
	mux.HandleFunc("GET /health", rt.healthHandler.Health)

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
