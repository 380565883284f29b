package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nic0w/dgc-decoder/keystore"
)

func newListKeystoreCommand() *cobra.Command {
	var keystorePath string

	cmd := &cobra.Command{
		Use:   "list-keystore",
		Short: "List the trust-anchor certificates in a keystore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keystorePath == "" {
				keystorePath = keystoreFlagDefault()
			}
			if keystorePath == "" {
				return fmt.Errorf("--keystore is required")
			}

			ks, err := keystore.Load(keystorePath)
			if err != nil {
				return fmt.Errorf("loading keystore: %w", err)
			}

			for _, entry := range ks.Pubkeys() {
				fmt.Printf("%s\n\tSubject:  %s\n\tIssuer:   %s\n\tNotBefore: %s\n\tNotAfter:  %s\n\n",
					entry.Kid,
					entry.Cert.Subject,
					entry.Cert.Issuer,
					entry.Cert.NotBefore.Format(rfc2822),
					entry.Cert.NotAfter.Format(rfc2822),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&keystorePath, "keystore", "k", "", "path or URL to the trust-list JSON document")

	return cmd
}

// rfc2822 is the RFC 2822 date-time layout, used per spec.md §6 for
// list-keystore's validity-bound output.
const rfc2822 = "Mon, 02 Jan 2006 15:04:05 -0700"
