package routes

import (
	"github.com/gin-gonic/gin"

	"afrisoutien/internal/handlers"
	"afrisoutien/internal/middleware"
	"afrisoutien/internal/repositories"
	"afrisoutien/internal/tokens"
)

func Setup(
	r *gin.Engine,
	issuer *tokens.Issuer,
	userRepo repositories.UserRepository,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	verifyHandler *handlers.VerifyHandler,
	campaignHandler *handlers.CampaignHandler,
	donationHandler *handlers.DonationHandler,
	boutiqueHandler *handlers.BoutiqueHandler,
	contentHandler *handlers.ContentHandler,
	paymentHandler *handlers.PaymentHandler,
	dashboardHandler *handlers.DashboardHandler,
) *gin.Engine {

	// ---- public
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/verify-email", verifyHandler.ConfirmEmail)
		auth.POST("/resend-verification", verifyHandler.ResendVerification)
		auth.POST("/forgot-password", verifyHandler.ForgotPassword)
		auth.POST("/reset-password", verifyHandler.ResetPassword)
	}

	// donor identity rides along when a session exists, anonymous otherwise
	optional := middleware.OptionalAuth(issuer, userRepo)
	r.GET("/api/campaigns", campaignHandler.ListPublic)
	r.GET("/api/campaigns/:id", optional, campaignHandler.GetByID)
	r.POST("/api/campaigns/:id/donations", optional, donationHandler.Create)
	r.GET("/api/boutique", boutiqueHandler.ListPublished)
	r.GET("/api/boutique/:id", boutiqueHandler.GetItem)
	r.GET("/api/content/:slug", contentHandler.GetBySlug)
	r.POST("/api/payments/initiate", paymentHandler.Initiate)

	// ---- session required
	session := r.Group("/api", middleware.Auth(issuer, userRepo))
	{
		session.GET("/auth/me", authHandler.Me)
		session.PUT("/users/me", userHandler.UpdateMe)
		session.GET("/users/me/campaigns", campaignHandler.ListMine)
		session.GET("/users/me/donations", donationHandler.ListMine)
		session.POST("/campaigns", campaignHandler.Create)
		session.POST("/boutique/items", boutiqueHandler.ProposeItem)
		session.POST("/boutique/:id/orders", boutiqueHandler.RequestItem)
	}

	// ---- admin back-office
	admin := r.Group("/api/admin", middleware.Auth(issuer, userRepo), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", dashboardHandler.Summary)

		admin.GET("/campaigns", campaignHandler.ListAll)
		admin.POST("/campaigns/:id/status", campaignHandler.ChangeStatus)

		admin.GET("/donations", donationHandler.ListAll)
		admin.POST("/donations/:id/approve", donationHandler.Approve)
		admin.POST("/donations/:id/reject", donationHandler.Reject)

		admin.GET("/boutique/items", boutiqueHandler.ListItems)
		admin.POST("/boutique/items/:id/status", boutiqueHandler.ModerateItem)
		admin.GET("/boutique/orders", boutiqueHandler.ListOrders)
		admin.POST("/boutique/orders/:id/approve", boutiqueHandler.ApproveOrder)
		admin.POST("/boutique/orders/:id/reject", boutiqueHandler.RejectOrder)

		admin.GET("/users", userHandler.ListUsers)
		admin.POST("/users/:id/role", userHandler.ChangeRole)
		admin.DELETE("/users/:id", userHandler.DeleteUser)

		admin.GET("/content", contentHandler.List)
		admin.POST("/content", contentHandler.Upsert)

		admin.GET("/payments", paymentHandler.ListAll)
	}

	return r
}
