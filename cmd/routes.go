package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"lenslink/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))
	clientMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleClient))
	partnerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RolePartner))
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleAdmin))

	mux := pat.New()

	// Auth
	mux.Post("/auth/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/auth/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))

	// Current user
	mux.Get("/me", authMiddleware.ThenFunc(app.userHandler.GetMe))
	mux.Put("/me", authMiddleware.ThenFunc(app.userHandler.UpdateMe))
	mux.Del("/me", authMiddleware.ThenFunc(app.userHandler.DeleteMe))
	mux.Post("/me/device_token", authMiddleware.ThenFunc(app.userHandler.RegisterDeviceToken))
	mux.Del("/me/device_token", authMiddleware.ThenFunc(app.userHandler.RemoveDeviceToken))

	// Inquiries
	mux.Post("/inquiries", clientMiddleware.ThenFunc(app.inquiryHandler.CreateInquiry))
	mux.Get("/inquiries", clientMiddleware.ThenFunc(app.inquiryHandler.ListMyInquiries))
	mux.Get("/inquiries/:id", authMiddleware.ThenFunc(app.inquiryHandler.GetInquiry))
	mux.Put("/inquiries/:id/status", clientMiddleware.ThenFunc(app.inquiryHandler.UpdateStatus))
	mux.Post("/inquiries/:id/responses", partnerMiddleware.ThenFunc(app.inquiryHandler.Respond))
	mux.Post("/inquiries/:id/book", clientMiddleware.ThenFunc(app.inquiryHandler.Book))

	// Partners
	mux.Post("/partners", authMiddleware.ThenFunc(app.partnerHandler.CreateProfile))
	mux.Get("/partners/me", partnerMiddleware.ThenFunc(app.partnerHandler.GetOwnProfile))
	mux.Put("/partners/me", partnerMiddleware.ThenFunc(app.partnerHandler.UpdateProfile))
	mux.Get("/partners/me/leads", partnerMiddleware.ThenFunc(app.partnerHandler.GetLeads))
	mux.Get("/partners/me/stats", partnerMiddleware.ThenFunc(app.partnerHandler.GetStats))
	mux.Get("/partners/:partner_id/portfolio", standardMiddleware.ThenFunc(app.portfolioHandler.GetPartnerPortfolio))
	mux.Get("/partners/:partner_id/reviews", standardMiddleware.ThenFunc(app.reviewHandler.GetPartnerReviews))
	mux.Get("/partners/:id", standardMiddleware.ThenFunc(app.partnerHandler.GetPartnerByID))

	// Portfolio
	mux.Get("/portfolio", partnerMiddleware.ThenFunc(app.portfolioHandler.GetOwnPortfolio))
	mux.Post("/portfolio", partnerMiddleware.ThenFunc(app.portfolioHandler.UpsertPortfolio))
	mux.Put("/portfolio/reorder", partnerMiddleware.ThenFunc(app.portfolioHandler.Reorder))
	mux.Post("/portfolio/items", partnerMiddleware.ThenFunc(app.portfolioHandler.AddItem))
	mux.Put("/portfolio/items/:item_id", partnerMiddleware.ThenFunc(app.portfolioHandler.UpdateItem))
	mux.Del("/portfolio/items/:item_id", partnerMiddleware.ThenFunc(app.portfolioHandler.DeleteItem))

	// Reviews
	mux.Post("/reviews", clientMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Put("/reviews/:id/reply", partnerMiddleware.ThenFunc(app.reviewHandler.Reply))

	// Reference data
	mux.Get("/categories", standardMiddleware.ThenFunc(app.categoryHandler.GetCategories))
	mux.Get("/categories/:id", standardMiddleware.ThenFunc(app.categoryHandler.GetCategoryByID))
	mux.Post("/categories", adminMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Put("/categories/:id", adminMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/categories/:id", adminMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))

	mux.Get("/locations", standardMiddleware.ThenFunc(app.locationHandler.GetLocations))
	mux.Get("/locations/:id", standardMiddleware.ThenFunc(app.locationHandler.GetLocationByID))
	mux.Post("/locations", adminMiddleware.ThenFunc(app.locationHandler.CreateLocation))
	mux.Put("/locations/:id", adminMiddleware.ThenFunc(app.locationHandler.UpdateLocation))
	mux.Del("/locations/:id", adminMiddleware.ThenFunc(app.locationHandler.DeleteLocation))

	// Admin
	mux.Get("/admin/stats", adminMiddleware.ThenFunc(app.adminHandler.GetStats))
	mux.Get("/admin/users", adminMiddleware.ThenFunc(app.adminHandler.ListUsers))
	mux.Get("/admin/partners", adminMiddleware.ThenFunc(app.partnerHandler.ListVerificationRequests))
	mux.Put("/admin/partners/:id/verify", adminMiddleware.ThenFunc(app.partnerHandler.VerifyPartner))
	mux.Get("/admin/reviews", adminMiddleware.ThenFunc(app.reviewHandler.ListForModeration))
	mux.Put("/admin/reviews/:id/moderate", adminMiddleware.ThenFunc(app.reviewHandler.Moderate))
	mux.Del("/admin/reviews/:id", adminMiddleware.ThenFunc(app.reviewHandler.DeleteReview))

	// Realtime
	mux.Get("/ws", standardMiddleware.ThenFunc(app.WebSocketHandler))

	return standardMiddleware.Then(mux)
}
