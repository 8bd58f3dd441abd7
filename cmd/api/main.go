package main

import (
	_ "scan2plan/docs"
	"scan2plan/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Scan2Plan CPQ API
// @version         1.0
// @description     Quote pricing & versioning service (CPQ engine) backed by DynamoDB.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
