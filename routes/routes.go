package routes

import (
	"dipout-backend/config"
	"dipout-backend/controllers"
	"dipout-backend/services"
	"dipout-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://dip-out.com",
			"https://app.dip-out.com",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Trial-Days-Left", "X-Trial-Banner"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Stores and services
	records := services.NewRecordStore(db)
	settings := services.NewSettingsStore(db)
	scoring := services.NewScoringEngine(records, settings)
	paywall := services.NewPaywall(settings)
	billing := services.NewBillingService()
	notify := services.NewNotifyService(db, settings)

	authController := &controllers.AuthController{DB: db, Settings: settings}
	noShowController := &controllers.NoShowController{Records: records, Scoring: scoring, Notify: notify}
	dashboardController := &controllers.DashboardController{Records: records}
	settingsController := &controllers.SettingsController{Settings: settings}
	subscriptionController := &controllers.SubscriptionController{DB: db, Settings: settings, Paywall: paywall, Billing: billing}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Public pricing catalog (still behind auth, never behind the paywall)
		api.GET("/plans", subscriptionController.GetPlans)

		// Settings and billing stay reachable while blocked, so an expired
		// user can still pay
		api.GET("/settings", settingsController.GetSettings)
		api.PUT("/settings", settingsController.UpdateSettings)
		api.GET("/subscription", subscriptionController.GetSubscription)
		api.POST("/subscription", subscriptionController.UpdateSubscription)

		billingGroup := api.Group("/billing")
		{
			billingGroup.POST("/checkout", subscriptionController.CreateCheckout)
			billingGroup.POST("/confirm", subscriptionController.ConfirmPayment)
		}

		// Protected area: every route passes through the paywall gate
		protected := api.Group("")
		protected.Use(paywall.Middleware())
		{
			protected.POST("/noshows", noShowController.CaptureNoShow)
			protected.GET("/customers", noShowController.GetCustomers)
			protected.GET("/customers/:phone", noShowController.GetCustomerByPhone)
			protected.GET("/dashboard", dashboardController.GetDashboardOverview)
		}
	}

	return r
}
