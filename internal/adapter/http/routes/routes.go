package routes

import (
	"log"
	"os"
	"strconv"

	_ "invoicetracker/docs" // This will be auto-generated
	"invoicetracker/internal/adapter/http/handlers"
	"invoicetracker/internal/adapter/http/middleware"
	repository2 "invoicetracker/internal/adapter/persistence/repository"
	"invoicetracker/internal/infrastructure/ai"
	"invoicetracker/internal/infrastructure/database"
	"invoicetracker/internal/infrastructure/duplicates"
	"invoicetracker/internal/infrastructure/storage"
	"invoicetracker/internal/usecase"
	"invoicetracker/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ddb := database.ConnectDynamoDB()

	invoiceRepo := repository2.NewInvoiceDynamoRepository(ddb)
	productRepo := repository2.NewProductDynamoRepository(ddb)
	userRepo := repository2.NewUserDynamoRepository(ddb)
	auditRepo := repository2.NewAuditDynamoRepository(ddb)

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}
	fileStore, err := storage.NewLocalStorage(uploadsDir, logger)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Extraction and duplicate screening are optional integrations; the
	// invoice lifecycle works without either.
	var extractor *usecase.ExtractionEngine
	gemini, err := ai.NewGeminiClient(os.Getenv("GEMINI_BASE_URL"), os.Getenv("GEMINI_MODEL"), os.Getenv("GEMINI_API_KEY"), logger)
	if err != nil {
		log.Printf("Document extraction disabled: %v", err)
	} else {
		extractor = usecase.NewExtractionEngine(gemini, logger)
	}

	var dupClient interfaces.IDuplicateClient
	if url := os.Getenv("DUPLICATES_SERVICE_URL"); url != "" {
		dupClient = duplicates.NewHTTPClient(url, logger)
	} else {
		log.Printf("Duplicate detection disabled: DUPLICATES_SERVICE_URL not set")
	}

	invoiceUseCase := usecase.NewInvoiceUseCase(
		invoiceRepo,
		auditRepo,
		fileStore,
		usecase.NewInvoiceBuilder(fileStore, logger),
		usecase.NewLineItemAggregator(productRepo, logger),
		extractor,
		usecase.NewDuplicateCoordinator(dupClient, logger),
		logger,
	)
	productUseCase := usecase.NewProductUseCase(productRepo)

	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase)
	productHandler := handlers.NewProductHandler(productUseCase)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Printf("JWT_SECRET not set, tokens signed with an empty secret will be accepted")
	}
	auth := middleware.NewAuthMiddleware(userRepo, secret, logger)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addInvoiceRoutes(v1, auth, invoiceHandler, productHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
