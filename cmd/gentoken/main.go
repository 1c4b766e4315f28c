package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"time"

	"Agora/internal/api/middleware"
	"Agora/internal/config"
)

// gentoken mints HS256 bearer tokens for local development
//
// Usage:
//
//	go run ./cmd/gentoken -secret-only
//	go run ./cmd/gentoken -did did:plc:alice [-ttl 24h]
//
// The signing secret and issuer are read from AGORA_JWT_SECRET and
// AGORA_JWT_ISSUER (a .env file is honoured), the same variables the server uses.
func main() {
	did := flag.String("did", "", "DID to place in the sub claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	secretOnly := flag.Bool("secret-only", false, "print a fresh random AGORA_JWT_SECRET and exit")
	flag.Parse()

	if *secretOnly {
		buf := make([]byte, config.MinJWTSecretLength)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("Failed to generate secret: %v", err)
		}
		fmt.Println("Add this to your .env file:")
		fmt.Printf("\nAGORA_JWT_SECRET=%s\n", hex.EncodeToString(buf))
		return
	}

	if *did == "" {
		log.Fatal("-did is required")
	}

	cfg := config.Load()
	if len(cfg.JWTSecret) < config.MinJWTSecretLength {
		log.Fatalf("AGORA_JWT_SECRET must be set and at least %d bytes (try -secret-only)", config.MinJWTSecretLength)
	}

	token, err := middleware.IssueToken([]byte(cfg.JWTSecret), cfg.JWTIssuer, *did, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}
