// Command token mints a development access token for a user ID, signed
// with the configured secret.
//
// Usage:
//
//	token --user=6f1c...   (omit --user to generate a new ID)
//
// Requires AUTH_JWT_SECRET environment variable to be set.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/heartmarshall/tripplanner-backend/internal/auth"
)

func main() {
	user := flag.String("user", "", "user id (uuid)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	issuer := flag.String("issuer", "tripplanner", "token issuer")
	flag.Parse()

	_ = godotenv.Load()

	secret := os.Getenv("AUTH_JWT_SECRET")
	if len(secret) < 32 {
		log.Fatal("AUTH_JWT_SECRET must be at least 32 characters")
	}

	userID := uuid.New()
	if *user != "" {
		var err error
		if userID, err = uuid.Parse(*user); err != nil {
			log.Fatalf("invalid --user: %v", err)
		}
	}

	token, err := auth.NewJWTManager(secret, *issuer, *ttl).GenerateAccessToken(userID)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "user: %s\n", userID)
	fmt.Println(token)
}
