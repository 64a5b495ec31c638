package main

import (
	"context"
	"log"
	"os"

	"github.com/jaychung003/food-tracker/config"
	"github.com/jaychung003/food-tracker/routes"
	"github.com/jaychung003/food-tracker/services"
	"github.com/jaychung003/food-tracker/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	config.InitDB()

	if err := services.NewIngredientService(config.DB).Seed(context.Background()); err != nil {
		log.Fatalf("ingredient seed failed: %v", err)
	}

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":8080"
	}

	r := routes.SetupRouter(config.DB)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
