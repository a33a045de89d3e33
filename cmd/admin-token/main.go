package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hireline/api/pkg/token"
)

func main() {
	// Flags for customization
	secret := flag.String("secret", os.Getenv("JWT_ACCESS_SECRET"), "HMAC secret for signing (defaults to JWT_ACCESS_SECRET)")
	userID := flag.String("user", "user:admin-dev", "User ID for the token")
	issuer := flag.String("issuer", "hireline", "JWT issuer")
	expMins := flag.Int("exp", 60*24, "Token expiration in minutes (default: 24 hours)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *secret == "" {
		fmt.Fprintf(os.Stderr, "Error: no signing secret\n")
		fmt.Fprintf(os.Stderr, "\nSet JWT_ACCESS_SECRET or pass -secret\n")
		os.Exit(1)
	}

	iss, err := token.NewIssuer(token.Config{
		AccessSecret: *secret,
		Issuer:       *issuer,
		AccessTTL:    time.Duration(*expMins) * time.Minute,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating token issuer: %v\n", err)
		os.Exit(1)
	}

	accessToken, expiresAt, err := iss.IssueAccessToken(*userID, "admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": accessToken,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"user_id":      *userID,
			"role":         "admin",
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
	} else {
		fmt.Println("Admin Token Generated")
		fmt.Println("=====================")
		fmt.Printf("User ID:  %s\n", *userID)
		fmt.Printf("Role:     admin\n")
		fmt.Printf("Expires:  %s\n", expiresAt.Format(time.RFC3339))
		fmt.Println()
		fmt.Println("Token:")
		fmt.Println(accessToken)
	}
}
