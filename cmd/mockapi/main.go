package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/netdash/netdash/internal/mockapi"
)

const defaultSecret = "netdash-mock-api-development-secret"

func main() {
	port := flag.String("port", envOr("MOCKAPI_PORT", "8000"), "port to listen on")
	expiry := flag.Duration("token-expiry", 30*time.Minute, "access token lifetime")
	flag.Parse()

	secret := envOr("MOCKAPI_JWT_SECRET", defaultSecret)

	router, err := mockapi.NewRouter(secret, *expiry)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	fmt.Println("Starting NetDash Mock API Server...")
	fmt.Printf("Listening on http://localhost:%s\n", *port)
	fmt.Println("\nEndpoints:")
	fmt.Println("  Health: GET http://localhost:" + *port + "/health")
	fmt.Println("\n  Auth:")
	fmt.Println("    POST http://localhost:" + *port + "/api/auth/login")
	fmt.Println("    GET  http://localhost:" + *port + "/api/auth/me")
	fmt.Println("\n  Users (admin only):")
	fmt.Println("    GET    http://localhost:" + *port + "/api/auth/users")
	fmt.Println("    POST   http://localhost:" + *port + "/api/auth/users")
	fmt.Println("    DELETE http://localhost:" + *port + "/api/auth/users/{id}")
	fmt.Println("    PUT    http://localhost:" + *port + "/api/auth/users/{id}/password")
	fmt.Println("\n  Devices:")
	fmt.Println("    GET http://localhost:" + *port + "/api/devices")
	fmt.Println("\n  Test Credentials:")
	fmt.Println("    Username: admin   Password: secret")
	fmt.Println("    Username: viewer  Password: secret")
	fmt.Println()

	if err := http.ListenAndServe(":"+*port, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
