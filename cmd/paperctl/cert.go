package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/stratapapers/internal/app/system/certcheck"
	"github.com/spf13/cobra"
)

func newCertCmd(c *cli) *cobra.Command {
	var (
		siteURL string
		within  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "cert",
		Short: "Show the site's TLS certificate expiry",
		Long: `Connects to the site and prints its certificate issuer and expiry.
Exits non-zero when the certificate is invalid or expires within --within,
which makes it usable from cron or a monitoring check.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*certcheck.DialTimeout)
			defer cancel()

			info, err := certcheck.Check(ctx, siteURL, c.tlsConfig)
			if err != nil {
				return err
			}
			now := time.Now()
			fmt.Fprintf(c.out, "host       %s\n", info.Host)
			fmt.Fprintf(c.out, "issuer     %s\n", info.Issuer)
			fmt.Fprintf(c.out, "expires    %s\n", info.ExpiresAt.UTC().Format(time.RFC3339))
			fmt.Fprintf(c.out, "days left  %d\n", info.DaysLeft(now))

			switch {
			case !info.Valid(now):
				return fmt.Errorf("certificate for %s is not valid now", info.Host)
			case within > 0 && info.ExpiresAt.Sub(now) < within:
				return fmt.Errorf("certificate for %s expires in %d days", info.Host, info.DaysLeft(now))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&siteURL, "url", envDefault("base_url", "http://localhost:8080"), "site base URL")
	cmd.Flags().DurationVar(&within, "within", 14*24*time.Hour, "fail when expiry is closer than this")
	return cmd
}
