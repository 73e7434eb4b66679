package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/urjitutjit/creditapprovalsystem/pkg/auth"
)

type tokenOptions struct {
	subject        string
	secret         string
	privateKeyFile string
	issuer         string
	roles          []string
	ttl            time.Duration
}

func tokenCmd() *cobra.Command {
	var opts tokenOptions

	c := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for calling the credit service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToken(cmd.OutOrStdout(), opts)
		},
	}

	c.Flags().StringVar(&opts.subject, "subject", "creditctl", "Token subject")
	c.Flags().StringSliceVar(&opts.roles, "role", nil, "Role to grant (repeatable)")
	c.Flags().StringVar(&opts.secret, "secret", "", "HMAC secret shared with the service")
	c.Flags().StringVar(&opts.privateKeyFile, "private-key", "", "RSA private key PEM file")
	c.Flags().StringVar(&opts.issuer, "issuer", "credit-gateway", "Token issuer")
	c.Flags().DurationVar(&opts.ttl, "ttl", time.Hour, "Token lifetime")

	c.MarkFlagsMutuallyExclusive("secret", "private-key")
	c.MarkFlagsOneRequired("secret", "private-key")
	return c
}

func runToken(w io.Writer, opts tokenOptions) error {
	cfg := auth.JWTConfig{Secret: opts.secret, Issuer: opts.issuer, Expiration: opts.ttl}
	if opts.privateKeyFile != "" {
		key, err := auth.LoadKeyFromFile(opts.privateKeyFile)
		if err != nil {
			return err
		}
		cfg.PrivateKeyPEM = string(key)
	}

	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}
	token, err := svc.GenerateToken(opts.subject, opts.roles)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
