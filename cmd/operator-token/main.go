// Command operator-token signs a bearer token for the operator API using the
// same configuration as the server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	jwttoken "civreg/internal/jwt_token"
	"civreg/internal/platform/config"
)

func main() {
	operator := flag.String("operator", "", "operator name to embed in the token")
	ttl := flag.Duration("ttl", 8*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	svc := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	token, err := svc.GenerateOperatorToken(*operator, *ttl)
	if err != nil {
		slog.Error("failed to sign operator token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
