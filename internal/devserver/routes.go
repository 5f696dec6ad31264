package devserver

import (
	iamauth "github.com/Abraxas-365/hireboard/pkg/iam/auth"
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers every API route
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *AuthMiddleware) {
	authed := authMiddleware.Authenticate()
	scope := authMiddleware.RequireScope

	// Files returned by the upload endpoints
	app.Get("/files/:key/:name", handlers.ServeFile)

	// --- Auth: /api/auth ---
	authAPI := app.Group("/api/auth")
	authAPI.Post("/register", handlers.Register)
	authAPI.Post("/login", handlers.Login)
	authAPI.Post("/forgot-password", handlers.ForgotPassword)
	authAPI.Post("/reset-password", handlers.ResetPassword)
	authAPI.Post("/refresh-token", authed, handlers.RefreshToken)
	authAPI.Get("/me", authed, handlers.Me)

	// --- Jobs: /api/jobs ---
	// Browsing works signed out; a token adds is_saved and has_applied
	jobs := app.Group("/api/jobs")
	jobs.Get("/", authMiddleware.Optional(), handlers.ListJobs)
	jobs.Get("/search", authMiddleware.Optional(), handlers.SearchJobs)
	jobs.Get("/recommended",
		authed,
		scope(iamauth.ScopeJobsRead),
		handlers.RecommendedJobs,
	)
	jobs.Get("/:id", authMiddleware.Optional(), handlers.GetJob)
	jobs.Get("/:id/similar", authMiddleware.Optional(), handlers.SimilarJobs)
	jobs.Post("/:id/save", authed, scope(iamauth.ScopeJobsSave), handlers.SaveJob)
	jobs.Delete("/:id/save", authed, scope(iamauth.ScopeJobsSave), handlers.UnsaveJob)

	// --- Applications: /api/applications ---
	apps := app.Group("/api/applications", authed)
	apps.Post("/", scope(iamauth.ScopeApplicationsWrite), handlers.SubmitApplication)
	apps.Get("/my", scope(iamauth.ScopeApplicationsRead), handlers.MyApplications)
	apps.Get("/:id", scope(iamauth.ScopeApplicationsRead), handlers.GetApplication)
	apps.Post("/:id/withdraw", scope(iamauth.ScopeApplicationsWrite), handlers.WithdrawApplication)

	// --- Interviews: /api/interviews ---
	interviews := app.Group("/api/interviews", authed)
	interviews.Get("/my", scope(iamauth.ScopeInterviewsRead), handlers.ListInterviews)
	interviews.Get("/:id", scope(iamauth.ScopeInterviewsRead), handlers.GetInterview)
	interviews.Post("/", scope(iamauth.ScopeInterviewsSchedule), handlers.ScheduleInterview)
	interviews.Put("/:id", scope(iamauth.ScopeInterviewsSchedule), handlers.UpdateInterview)
	// Either party may cancel
	interviews.Post("/:id/cancel", scope(iamauth.ScopeInterviewsRead), handlers.CancelInterview)

	// --- Notifications: /api/notifications ---
	notes := app.Group("/api/notifications", authed)
	notes.Get("/", scope(iamauth.ScopeNotificationsRead), handlers.ListNotifications)
	notes.Get("/unread-count", scope(iamauth.ScopeNotificationsRead), handlers.UnreadCount)
	notes.Patch("/read-all", scope(iamauth.ScopeNotificationsWrite), handlers.MarkAllRead)
	notes.Patch("/:id/read", scope(iamauth.ScopeNotificationsWrite), handlers.MarkRead)
	notes.Delete("/:id", scope(iamauth.ScopeNotificationsWrite), handlers.DeleteNotification)

	// --- Job seeker: /api/job-seeker ---
	js := app.Group("/api/job-seeker", authed)
	js.Get("/profile", scope(iamauth.ScopeProfileRead), handlers.GetProfile)
	js.Put("/profile", scope(iamauth.ScopeProfileWrite), handlers.UpdateProfile)
	js.Post("/profile/resume", scope(iamauth.ScopeProfileWrite), handlers.UploadResume)
	js.Post("/profile/picture", scope(iamauth.ScopeProfileWrite), handlers.UploadProfilePicture)

	js.Post("/skills", scope(iamauth.ScopeProfileWrite), handlers.AddSkill)
	js.Put("/skills/:id", scope(iamauth.ScopeProfileWrite), handlers.UpdateSkill)
	js.Delete("/skills/:id", scope(iamauth.ScopeProfileWrite), handlers.DeleteSkill)
	js.Post("/experience", scope(iamauth.ScopeProfileWrite), handlers.AddExperience)
	js.Put("/experience/:id", scope(iamauth.ScopeProfileWrite), handlers.UpdateExperience)
	js.Delete("/experience/:id", scope(iamauth.ScopeProfileWrite), handlers.DeleteExperience)
	js.Post("/education", scope(iamauth.ScopeProfileWrite), handlers.AddEducation)
	js.Put("/education/:id", scope(iamauth.ScopeProfileWrite), handlers.UpdateEducation)
	js.Delete("/education/:id", scope(iamauth.ScopeProfileWrite), handlers.DeleteEducation)

	js.Get("/saved-jobs", scope(iamauth.ScopeJobsSave), handlers.SavedJobs)
	js.Post("/saved-jobs/:id", scope(iamauth.ScopeJobsSave), handlers.SaveJob)
	js.Delete("/saved-jobs/:id", scope(iamauth.ScopeJobsSave), handlers.UnsaveJob)

	// --- Employer: /api/employer ---
	emp := app.Group("/api/employer", authed)
	emp.Get("/jobs", scope(iamauth.ScopeJobsRead), handlers.MyJobs)
	emp.Post("/jobs", scope(iamauth.ScopeJobsWrite), handlers.CreateJob)
	emp.Put("/jobs/:id", scope(iamauth.ScopeJobsWrite), handlers.UpdateJob)
	emp.Delete("/jobs/:id", scope(iamauth.ScopeJobsDelete), handlers.DeleteJob)
	emp.Get("/jobs/:id/applications", scope(iamauth.ScopeApplicationsReview), handlers.JobApplications)
	emp.Patch("/applications/:id/status", scope(iamauth.ScopeApplicationsReview), handlers.UpdateApplicationStatus)
	emp.Post("/applications/:id/rate", scope(iamauth.ScopeApplicationsReview), handlers.RateApplication)
	emp.Get("/interviews", scope(iamauth.ScopeInterviewsSchedule), handlers.ListInterviews)

	emp.Get("/team", scope(iamauth.ScopeTeamRead), handlers.ListTeam)
	emp.Post("/team/invite", scope(iamauth.ScopeTeamManage), handlers.InviteMember)
	emp.Patch("/team/:id/role", scope(iamauth.ScopeTeamManage), handlers.UpdateMemberRole)
	emp.Delete("/team/:id", scope(iamauth.ScopeTeamManage), handlers.RemoveMember)
	emp.Get("/dashboard", scope(iamauth.ScopeDashboardRead), handlers.Dashboard)

	// --- AI assist: /api/ai ---
	aiAPI := app.Group("/api/ai", authed, scope(iamauth.ScopeAIUse))
	aiAPI.Post("/job-matches", handlers.JobMatches)
	aiAPI.Post("/analyze-resume", handlers.AnalyzeResume)
	aiAPI.Post("/interview-questions", handlers.InterviewQuestions)
	aiAPI.Post("/evaluate-answer", handlers.EvaluateAnswer)
}
