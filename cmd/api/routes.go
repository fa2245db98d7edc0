package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(app.RequestIDMiddleware())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	})

	r.Use(app.CORSMiddleware())
	if app.Config.Limiter.Enabled {
		r.Use(app.RateLimitMiddleware())
	}
	r.Use(app.MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// company routes
		v1.POST("/companies", app.Handler.CreateCompany)
		v1.GET("/companies", app.Handler.ListCompanies)
		v1.GET("/companies/:company_id", app.Handler.GetCompany)
		v1.PATCH("/companies/:company_id", app.Handler.UpdateCompany)
		v1.DELETE("/companies/:company_id", app.Handler.DeleteCompany)

		// contact routes
		v1.POST("/contacts", app.Handler.CreateContact)
		v1.GET("/contacts", app.Handler.ListContacts)
		v1.GET("/contacts/:contact_id", app.Handler.GetContact)
		v1.PATCH("/contacts/:contact_id", app.Handler.UpdateContact)
		v1.DELETE("/contacts/:contact_id", app.Handler.DeleteContact)

		// document routes
		v1.POST("/documents", app.Handler.CreateDocument)
		v1.GET("/documents", app.Handler.ListDocuments)
		v1.GET("/documents/:document_id", app.Handler.GetDocument)
		v1.DELETE("/documents/:document_id", app.Handler.DeleteDocument)

		// reminder routes
		v1.POST("/reminders", app.Handler.CreateReminder)
		v1.GET("/reminders", app.Handler.ListReminders)
		v1.GET("/reminders/:reminder_id", app.Handler.GetReminder)
		v1.PATCH("/reminders/:reminder_id", app.Handler.UpdateReminder)
		v1.DELETE("/reminders/:reminder_id", app.Handler.DeleteReminder)

		// application routes
		v1.POST("/applications", app.Handler.CreateApplication)
		v1.GET("/applications", app.Handler.ListApplications)
		v1.GET("/applications/:application_id", app.Handler.GetApplication)
		v1.PATCH("/applications/:application_id", app.Handler.UpdateApplication)
		v1.PUT("/applications/:application_id/status", app.Handler.UpdateApplicationStatus)
		v1.DELETE("/applications/:application_id", app.Handler.DeleteApplication)

		v1.POST("/applications/:application_id/interactions", app.Handler.AddInteraction)
		v1.GET("/applications/:application_id/interactions", app.Handler.ListInteractions)
		v1.PUT("/applications/:application_id/contacts/:contact_id", app.Handler.AddApplicationContact)
		v1.DELETE("/applications/:application_id/contacts/:contact_id", app.Handler.RemoveApplicationContact)
		v1.GET("/applications/:application_id/contacts", app.Handler.ListApplicationContacts)
		v1.PUT("/applications/:application_id/documents/:document_id", app.Handler.AttachApplicationDocument)
		v1.GET("/applications/:application_id/documents", app.Handler.ListApplicationDocuments)
		v1.POST("/applications/:application_id/notes", app.Handler.AddApplicationNote)
		v1.GET("/applications/:application_id/timeline", app.Handler.GetApplicationTimeline)
		v1.GET("/applications/:application_id/history", app.Handler.GetApplicationHistory)

		// analytics routes
		v1.GET("/analytics/summary", app.Handler.GetAnalyticsSummary)
		v1.GET("/analytics/status-breakdown", app.Handler.GetStatusBreakdown)
		v1.GET("/analytics/weekly", app.Handler.GetWeeklyApplications)
		v1.GET("/analytics/top-companies", app.Handler.GetTopCompanies)
		v1.GET("/analytics/recent-activity", app.Handler.GetRecentActivity)
	}

	return r
}
