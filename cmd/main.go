package main

import (
	"context"
	"os"

	"github.com/boredom1234/yummenu-backend/config"
	"github.com/boredom1234/yummenu-backend/middlewares"
	"github.com/boredom1234/yummenu-backend/routes"
	"github.com/boredom1234/yummenu-backend/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitSES()
	middlewares.InitJWTVerifier(context.Background())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	r.Run(":" + port)
}
