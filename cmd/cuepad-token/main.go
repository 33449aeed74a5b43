// Command cuepad-token mints a bearer token for the Cuepad Core API.
//
// The secret and lifetime come from the same config file as the server
// (CUEPAD_CONFIG or configs/config.yaml):
//
//	cuepad-token -subject foh-tablet -role operator
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nerrad567/cuepad-core/internal/auth"
	"github.com/nerrad567/cuepad-core/internal/infrastructure/config"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("cuepad-token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	subject := fs.String("subject", "", "token subject, e.g. the device or operator name")
	role := fs.String("role", string(auth.RoleOperator), "viewer, operator or director")
	ttl := fs.Duration("ttl", 0, "token lifetime (defaults to security.jwt.access_token_ttl)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.AuthEnabled() {
		return fmt.Errorf("security.jwt.secret is empty; the API is open and needs no token")
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.TokenTTL()
	}

	token, err := auth.GenerateToken(*subject, auth.Role(*role), cfg.Security.JWT.Secret, lifetime)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	fmt.Fprintln(out, token)
	fmt.Fprintf(os.Stderr, "role %s, expires %s\n", *role, time.Now().Add(lifetime).Format(time.RFC3339))
	return nil
}

func getConfigPath() string {
	if path := os.Getenv("CUEPAD_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
