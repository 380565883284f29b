package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Nic0w/dgc-decoder"
	"github.com/Nic0w/dgc-decoder/display"
	"github.com/Nic0w/dgc-decoder/keystore"
)

func newVerifyCommand() *cobra.Command {
	var keystorePath string

	cmd := &cobra.Command{
		Use:   "verify <image-or-text>",
		Short: "Decode and cryptographically verify certificates",
		Args:  cobra.ExactArgs(1),
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
			logrus.WithField("entries", ks.Len()).Info("keystore loaded")

			payloads, err := resolvePayloads(args[0], unavailableScanner{})
			if err != nil {
				return err
			}

			verifiedCount := 0
			for _, payload := range payloads {
				v, err := decodeAndVerify(payload, ks)
				if err != nil {
					logrus.WithError(err).Warn("certificate did not verify")
					continue
				}
				verifiedCount++
				fmt.Print(renderVerified(v))
			}

			if verifiedCount == 0 {
				return fmt.Errorf("no certificate verified")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&keystorePath, "keystore", "k", "", "path or URL to the trust-list JSON document")

	return cmd
}

func decodeAndVerify(payload string, ks *keystore.KeyStore) (*dgc.Verified, error) {
	raw, err := dgc.Decode(payload)
	if err != nil {
		return nil, err
	}

	decoded, err := raw.Decode()
	if err != nil {
		return nil, err
	}

	return decoded.VerifySignature(ks)
}

func renderVerified(v *dgc.Verified) string {
	claims := v.Claims()
	return display.FormatCertificate(
		claims.HCert.Person,
		claims.HCert.DateOfBirth,
		v.VaccineData(),
		v.TestData(),
		v.RecoveryData(),
		v.IssuedAt(),
		v.ExpiringAt(),
	)
}
