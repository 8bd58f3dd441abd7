package routes

import (
	"log"
	"strconv"

	_ "scan2plan/docs" // This will be auto-generated
	"scan2plan/internal/adapter/http/handlers"
	repository2 "scan2plan/internal/adapter/persistence/repository"
	"scan2plan/internal/infrastructure/database"
	"scan2plan/internal/usecase"

	"github.com/gin-gonic/gin"
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
	ddb := database.ConnectDynamoDB()

	quoteRepo := repository2.NewQuoteDynamoRepository(ddb)
	allocator := repository2.NewQuoteNumberDynamoAllocator(ddb)
	settingsRepo := repository2.NewSettingsDynamoRepository(ddb)
	matrixRepo := repository2.NewMatrixDynamoRepository(ddb)

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, allocator, settingsRepo, matrixRepo)
	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, quoteHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
