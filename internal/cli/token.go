package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chasta/skyguard/internal/auth"
	"github.com/chasta/skyguard/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type TokenOptions struct {
	Secret   string
	Username string
	TTL      time.Duration
}

func DefaultTokenOptions() *TokenOptions {
	return &TokenOptions{
		Username: "admin",
	}
}

func NewCmdToken() *cobra.Command {
	o := DefaultTokenOptions()
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for the local authenticator.",
		Long:  "Mint an admin token for the local authenticator. The secret and ttl default to SKYGUARD_AUTH_SECRET and SKYGUARD_AUTH_TOKEN_TTL.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *TokenOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Secret, "secret", o.Secret, "HS256 signing secret")
	fs.StringVar(&o.Username, "username", o.Username, "Subject of the token")
	fs.DurationVar(&o.TTL, "ttl", o.TTL, "Token lifetime")
}

func (o *TokenOptions) Complete(cmd *cobra.Command, args []string) error {
	if o.Secret != "" && o.TTL > 0 {
		return nil
	}

	cfg, err := config.NewDefault()
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	if o.Secret == "" {
		o.Secret = cfg.Service.Auth.Secret
	}
	if o.TTL <= 0 {
		o.TTL = cfg.Service.Auth.TokenTTL
	}
	return nil
}

func (o *TokenOptions) Validate(args []string) error {
	if o.Secret == "" {
		return fmt.Errorf("a secret is required, use --secret or SKYGUARD_AUTH_SECRET")
	}
	if o.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}

func (o *TokenOptions) Run(ctx context.Context, w io.Writer) error {
	token, err := auth.GenerateAdminToken([]byte(o.Secret), o.Username, o.TTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
