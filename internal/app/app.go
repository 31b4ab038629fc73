package app

import (
	"database/sql"
	"fmt"
	"log"

	"afrisoutien/internal/config"
	"afrisoutien/internal/handlers"
	"afrisoutien/internal/pdf"
	"afrisoutien/internal/repositories"
	"afrisoutien/internal/routes"
	"afrisoutien/internal/services"
	"afrisoutien/internal/tokens"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "afrisoutien/docs"
)

func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	campaignRepo := repositories.NewCampaignRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	itemRepo := repositories.NewBoutiqueItemRepository(db)
	orderRepo := repositories.NewBoutiqueOrderRepository(db)
	contentRepo := repositories.NewContentRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// === Services ===
	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.RefreshSecret)
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Server.PublicURL,
	)
	notifier := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)

	userService := services.NewUserService(userRepo, emailService, authService, notifier)
	verificationService := services.NewVerificationService(userRepo, emailService)
	resetService := services.NewPasswordResetService(userRepo, emailService, authService)

	campaignService := services.NewCampaignService(campaignRepo, notifier)
	receipts := pdf.NewReceiptWriter(cfg.Files.RootDir, "assets/fonts/DejaVuSans.ttf")
	donationService := services.NewDonationService(donationRepo, campaignService, emailService, receipts, notifier)
	boutiqueService := services.NewBoutiqueService(itemRepo, orderRepo, notifier)
	contentService := services.NewContentService(contentRepo)

	provider := services.NewProviderClient(cfg.Payment.Operator, cfg.Payment.APIKey, cfg.Payment.DryRun)
	paymentService := services.NewPaymentService(paymentRepo, campaignService, provider)

	reportService := services.NewReportService(userRepo, campaignRepo, donationRepo, itemRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, issuer, cfg.Server.Production)
	userHandler := handlers.NewUserHandler(userService)
	verifyHandler := handlers.NewVerifyHandler(verificationService, resetService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	donationHandler := handlers.NewDonationHandler(donationService)
	boutiqueHandler := handlers.NewBoutiqueHandler(boutiqueService)
	contentHandler := handlers.NewContentHandler(contentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(
		router,
		issuer,
		userRepo,
		authHandler,
		userHandler,
		verifyHandler,
		campaignHandler,
		donationHandler,
		boutiqueHandler,
		contentHandler,
		paymentHandler,
		dashboardHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[app] listening on %s", listenAddr)
	return router.Run(listenAddr)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
