package main

import (
	"context"
	"log"

	"github.com/devqueiroz/landing-orders/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("api: %v", err)
	}
}
