package main

import (
	"fmt"
	"log"
	"os"

	"dipout-backend/config"
	"dipout-backend/models"
	"dipout-backend/routes"
	"dipout-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.NoShowEvent{},
		&models.Settings{},
		&models.NotificationLog{},
	)
}

func main() {

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	notify := services.NewNotifyService(config.DB, services.NewSettingsStore(config.DB))
	notify.StartScheduler()

	r := routes.SetupRouter(config.DB)
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
