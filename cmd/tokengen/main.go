// Command tokengen mints bearer tokens for local development and testing.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/services"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type tokenOptions struct {
	tenant    string
	secret    string
	algorithm string
	ttl       time.Duration
}

func newRootCommand() *cobra.Command {
	opts := tokenOptions{}

	cmd := &cobra.Command{
		Use:   "tokengen",
		Short: "Mint a tenant-scoped bearer token",
		Long: `Mint an HMAC-signed bearer token carrying a tenant_id claim.

The secret defaults to $JWT_SECRET. Omit --tenant to generate a new tenant id.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, tenantID, err := mint(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "tenant_id: %s\n", tenantID)
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.tenant, "tenant", "", "tenant id to embed (random when empty)")
	cmd.Flags().StringVar(&opts.secret, "secret", os.Getenv("JWT_SECRET"), "HMAC signing secret")
	cmd.Flags().StringVar(&opts.algorithm, "alg", "HS256", "signing algorithm (HS256, HS384, HS512)")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 24*time.Hour, "token lifetime, 0 for no expiry")

	return cmd
}

func mint(opts tokenOptions) (string, uuid.UUID, error) {
	if opts.secret == "" {
		return "", uuid.Nil, errors.New("a signing secret is required (--secret or JWT_SECRET)")
	}
	if opts.ttl < 0 {
		return "", uuid.Nil, errors.New("--ttl cannot be negative")
	}

	tenantID := uuid.New()
	if opts.tenant != "" {
		parsed, err := uuid.Parse(opts.tenant)
		if err != nil || parsed == uuid.Nil {
			return "", uuid.Nil, fmt.Errorf("invalid --tenant %q", opts.tenant)
		}
		tenantID = parsed
	}

	token, err := services.SignTenantToken([]byte(opts.secret), opts.algorithm, tenantID, opts.ttl)
	if err != nil {
		return "", uuid.Nil, err
	}
	return token, tenantID, nil
}
