package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/stratapapers/internal/app/bootstrap"
	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
)

// secretKeys are the config keys that need random values in production.
var secretKeys = []string{"session_key", "csrf_key", "revalidate_secret"}

func newKeysCmd(c *cli) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate random secrets for a production deployment",
		Long: `Prints environment assignments with fresh random values for the
session key, CSRF key and revalidation secret. Values are hex encoded, so
--bytes 32 yields 64 characters.

Example:
  paperctl keys >> /etc/stratapapers.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if length < 16 {
				return errors.New("--bytes must be at least 16")
			}
			for _, k := range secretKeys {
				raw := securecookie.GenerateRandomKey(length)
				if raw == nil {
					return errors.New("failed to read random bytes")
				}
				fmt.Fprintf(c.out, "%s_%s=%s\n", bootstrap.EnvVarPrefix, strings.ToUpper(k), hex.EncodeToString(raw))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&length, "bytes", 32, "random bytes per secret")
	return cmd
}
