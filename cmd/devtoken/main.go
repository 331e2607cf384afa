// Command devtoken mints a bearer token for local use against the server.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	jwttoken "coldcheck/internal/jwt_token"
	"coldcheck/internal/platform/config"
)

func main() {
	subject := pflag.StringP("subject", "s", "", "actor id recorded as submitted_by (required)")
	name := pflag.StringP("name", "n", "", "display name")
	ttl := pflag.Duration("ttl", 12*time.Hour, "token lifetime")
	pflag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "devtoken: --subject is required")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		os.Exit(1)
	}
	token, err := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer).GenerateAccessToken(*subject, *name, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
