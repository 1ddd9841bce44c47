package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/worklane-hq/orgtime-backend-go/internal/config"
	"github.com/worklane-hq/orgtime-backend-go/internal/pkg/jwt"
)

// Mints an access token for local development and API testing.
func main() {
	userID := flag.String("user", "dev-user", "user id claim")
	employeeID := flag.String("employee", "", "employee id claim (required)")
	orgID := flag.String("org", "", "organization id claim (required)")
	role := flag.String("role", "employee", "role claim (employee or admin)")
	flag.Parse()

	if *employeeID == "" || *orgID == "" {
		fmt.Fprintln(os.Stderr, "both -employee and -org are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	token, expiresAt, err := jwtService.GenerateAccessToken(*userID, *employeeID, *orgID, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires at", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
}
