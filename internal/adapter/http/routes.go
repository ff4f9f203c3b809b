package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health      *Handler
	Forms       *FormHandler
	Submissions *SubmissionHandler
	Approvals   *ApprovalHandler
	Reference   *ReferenceHandler
	Crews       *CrewHandler
	Tokens      *TokenHandler
}

// Register mounts every route. api middleware wraps /api/v1 and reset-link
// issuance.
func Register(e *echo.Echo, h Handlers, api ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	admins := e.Group("/api/v1/admins", api...)

	forms := admins.Group("/forms")
	forms.POST("", h.Forms.Create)
	forms.GET("", h.Forms.List)
	forms.GET("/:id", h.Forms.Get)
	forms.PATCH("/:id/status", h.Forms.SetStatus)
	forms.GET("/:id/fields/:field_id/options", h.Forms.Options)
	forms.GET("/:id/submissions", h.Forms.Submissions)
	forms.GET("/:id/table", h.Forms.Table)
	forms.GET("/:id/export", h.Forms.Export)

	subs := admins.Group("/submissions")
	subs.POST("", h.Submissions.Create)
	subs.GET("", h.Submissions.Mine)
	subs.GET("/:id", h.Submissions.Get)
	subs.PUT("/:id", h.Submissions.AdminEdit)
	subs.DELETE("/:id", h.Submissions.Delete)
	subs.PATCH("/:id/draft", h.Submissions.SaveDraft)
	subs.POST("/:id/submit", h.Submissions.Submit)
	subs.POST("/:id/approvals", h.Approvals.Record)
	subs.GET("/:id/approvals", h.Approvals.History)
	subs.GET("/:id/approvals/current", h.Approvals.Current)

	admins.POST("/tags", h.Reference.CreateTag)
	admins.GET("/tags", h.Reference.ListTags)
	admins.GET("/tags/:id", h.Reference.GetTag)
	admins.PUT("/tags/:id", h.Reference.UpdateTag)
	admins.DELETE("/tags/:id", h.Reference.DeleteTag)

	admins.POST("/cost-codes", h.Reference.CreateCostCode)
	admins.GET("/cost-codes", h.Reference.ListCostCodes)
	admins.DELETE("/cost-codes/:id", h.Reference.DeleteCostCode)

	admins.POST("/jobsites", h.Reference.CreateJobsite)
	admins.GET("/jobsites", h.Reference.ListJobsites)
	admins.PUT("/jobsites/:id/tags", h.Reference.SetJobsiteTags)

	admins.POST("/crews", h.Crews.Create)
	admins.GET("/crews", h.Crews.List)
	admins.GET("/crews/:id", h.Crews.Get)
	admins.PUT("/crews/:id", h.Crews.Update)
	admins.DELETE("/crews/:id", h.Crews.Delete)

	// issuing a link needs a caller; the token holder acts anonymously
	tokens := e.Group("/api/tokens/reset")
	tokens.POST("", h.Tokens.Issue, api...)
	tokens.GET("/:token", h.Tokens.Verify)
	tokens.POST("/:token", h.Tokens.Reset)
	tokens.DELETE("/:token", h.Tokens.Invalidate)
}
