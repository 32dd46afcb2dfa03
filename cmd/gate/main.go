package main

import (
	"log"

	"github.com/aussiebroadwan/talentgate/internal/gate/app"
)

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init -g internal/gate/http/router.go -d ../../ -o ../../api/gate --parseDependency --parseInternal

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
