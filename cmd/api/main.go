package main

import (
	"log"
	"os"

	_ "pricing-backend/api/swagger" // swagger docs
	"pricing-backend/internal/database"
	"pricing-backend/internal/handler"
	"pricing-backend/internal/middleware"
	"pricing-backend/internal/price"
	"pricing-backend/internal/repository"
	"pricing-backend/internal/service"
	"pricing-backend/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Pricing API
// @version         1.0
// @description     Price calculation, currency exchange and formatting service.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)
	vatCategoryRepo := repository.NewVatCategoryRepository(db)
	priceTypeRepo := repository.NewPriceTypeRepository(db)
	rateRepo := repository.NewExchangeRateRepository(db)
	productRepo := repository.NewProductRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo, middleware.GetJWTSecret())
	currencyService := service.NewCurrencyService(currencyRepo, auditService)
	vatCategoryService := service.NewVatCategoryService(vatCategoryRepo, auditService)
	priceTypeService := service.NewPriceTypeService(priceTypeRepo, auditService)
	rateService := service.NewExchangeRateService(rateRepo, currencyRepo, auditService, wsHub)
	productService := service.NewProductService(productRepo, auditService)

	// Price engine: database-backed lookups, plain-text rendering
	priceFactory := service.NewPriceFactory(currencyRepo, vatCategoryRepo, priceTypeRepo, rateRepo)
	priceFormatter := price.NewFormatter(price.NewTextRenderer())
	priceService := service.NewPriceService(priceFactory, priceFormatter, productRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	currencyHandler := handler.NewCurrencyHandler(currencyService)
	vatHandler := handler.NewVatHandler(vatCategoryService)
	priceTypeHandler := handler.NewPriceTypeHandler(priceTypeService)
	exchangeHandler := handler.NewExchangeHandler(rateService)
	productHandler := handler.NewProductHandler(productService, priceService)
	priceHandler := handler.NewPriceHandler(priceService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint (exchange-rate change feed)
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	currencyHandler.RegisterRoutes(router.Group(""))
	vatHandler.RegisterRoutes(router.Group(""))
	priceTypeHandler.RegisterRoutes(router.Group(""))
	exchangeHandler.RegisterRoutes(router.Group(""))
	productHandler.RegisterRoutes(router.Group(""))
	priceHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
