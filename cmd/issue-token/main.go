package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/raushankrgupta/glory-storefront/config"
	"github.com/raushankrgupta/glory-storefront/models"
	"github.com/raushankrgupta/glory-storefront/utils"
)

// issue-token signs a provider token with JWT_SECRET for local testing, e.g.
//
//	go run ./cmd/issue-token -user admin-1 -email admin@example.com
//	curl -X POST localhost:8080/auth/session -H 'Content-Type: application/json' -d '{"token":"..."}'
func main() {
	userID := flag.String("user", "", "user id carried by the token")
	email := flag.String("email", "", "optional email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	config.LoadConfig()

	token, err := utils.GenerateToken(models.Identity{UserID: *userID, Email: *email}, *ttl)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
