package main

import (
	"github.com/gin-gonic/gin"

	"sarb.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	teamHandler      *handlers.TeamHandler
	serviceHandler   *handlers.ServiceHandler
	caseStudyHandler *handlers.CaseStudyHandler
	contactHandler   *handlers.ContactHandler
	authMiddleware   gin.HandlerFunc
	staffMiddleware  gin.HandlerFunc
	contactGuards    []gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Token routes (public)
		api.POST("/token", d.authHandler.Login)
		api.POST("/token/refresh", d.authHandler.Refresh)

		auth := api.Group("/auth")
		auth.Use(d.authMiddleware)
		{
			auth.GET("/me", d.authHandler.Me)
			auth.POST("/logout", d.authHandler.Logout)
		}

		// Content routes (public read)
		api.GET("/team", d.teamHandler.ListTeam)
		api.GET("/team/:id", d.teamHandler.GetTeamMember)
		api.GET("/services", d.serviceHandler.ListServices)
		api.GET("/services/:id", d.serviceHandler.GetService)
		api.GET("/case-studies", d.caseStudyHandler.ListCaseStudies)
		api.GET("/case-studies/:id", d.caseStudyHandler.GetCaseStudy)

		// Contact form (public, rate limited)
		api.POST("/contact", append(append([]gin.HandlerFunc{}, d.contactGuards...), d.contactHandler.SubmitContact)...)

		// Content and inbox management (staff only)
		staff := api.Group("")
		staff.Use(d.authMiddleware, d.staffMiddleware)
		{
			staff.POST("/team", d.teamHandler.CreateTeamMember)
			staff.PUT("/team/:id", d.teamHandler.UpdateTeamMember)
			staff.PATCH("/team/:id", d.teamHandler.UpdateTeamMember)
			staff.DELETE("/team/:id", d.teamHandler.DeleteTeamMember)

			staff.POST("/services", d.serviceHandler.CreateService)
			staff.PUT("/services/:id", d.serviceHandler.UpdateService)
			staff.PATCH("/services/:id", d.serviceHandler.UpdateService)
			staff.DELETE("/services/:id", d.serviceHandler.DeleteService)

			staff.POST("/case-studies", d.caseStudyHandler.CreateCaseStudy)
			staff.PUT("/case-studies/:id", d.caseStudyHandler.UpdateCaseStudy)
			staff.PATCH("/case-studies/:id", d.caseStudyHandler.UpdateCaseStudy)
			staff.DELETE("/case-studies/:id", d.caseStudyHandler.DeleteCaseStudy)

			staff.GET("/contact", d.contactHandler.ListMessages)
			staff.GET("/contact/:id", d.contactHandler.GetMessage)
			staff.PATCH("/contact/:id", d.contactHandler.UpdateMessage)
			staff.DELETE("/contact/:id", d.contactHandler.DeleteMessage)
		}
	}
}
