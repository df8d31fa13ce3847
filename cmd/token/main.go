// Command token mints an operator bearer token for the dashboard read
// API using the configured signing secret.
package main

import (
	"flag"
	"fmt"
	"log"

	"hookdash/internal/platform/auth"
	"hookdash/internal/platform/config"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	subject := flag.String("subject", "operator", "Token subject name")
	role := flag.String("role", "viewer", "Token role")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("auth.secret is not configured")
	}

	svc := auth.NewTokenService(cfg.Auth)
	token, err := svc.Generate(*subject, *role)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
