package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	revalidatefeature "github.com/dalemusser/stratapapers/internal/app/features/revalidate"
	"github.com/spf13/cobra"
)

func newRevalidateCmd(c *cli) *cobra.Command {
	var siteURL, secret string

	cmd := &cobra.Command{
		Use:   "revalidate",
		Short: "Ask a running site to drop its cached homepage",
		Long: `Calls POST /api/revalidate on the site, the same request the CMS sends
after content is published. Run it after "paperctl import" so the
homepage shows the new content immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			res, err := postRevalidate(ctx, http.DefaultClient, siteURL, secret)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "revalidated at %s\n", time.UnixMilli(res.Now).UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&siteURL, "url", envDefault("base_url", "http://localhost:8080"), "site base URL")
	cmd.Flags().StringVar(&secret, "secret", envDefault("revalidate_secret", ""), "revalidation secret")
	return cmd
}

func postRevalidate(ctx context.Context, client *http.Client, siteURL, secret string) (revalidatefeature.Response, error) {
	var out revalidatefeature.Response

	endpoint := strings.TrimRight(siteURL, "/") + "/api/revalidate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return out, err
	}
	if secret != "" {
		req.Header.Set(revalidatefeature.SecretHeader, secret)
	}

	resp, err := client.Do(req)
	if err != nil {
		return out, fmt.Errorf("revalidate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("revalidate: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("revalidate: decode response: %w", err)
	}
	if !out.Revalidated {
		return out, fmt.Errorf("revalidate: site reported revalidated=false")
	}
	return out, nil
}
