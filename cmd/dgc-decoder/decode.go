package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Nic0w/dgc-decoder"
	"github.com/Nic0w/dgc-decoder/display"
)

func newDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <image-or-text>",
		Short: "Decode certificates without verifying their signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payloads, err := resolvePayloads(args[0], unavailableScanner{})
			if err != nil {
				return err
			}

			decodedCount := 0
			for _, payload := range payloads {
				raw, err := dgc.Decode(payload)
				if err != nil {
					logrus.WithError(err).Warn("failed to decode envelope")
					continue
				}

				decoded, err := raw.Decode()
				if err != nil {
					logrus.WithError(err).Warn("failed to parse COSE_Sign1")
					continue
				}

				claims, err := decoded.DecodePayload()
				if err != nil {
					logrus.WithError(err).Warn("failed to parse CWT/HCERT payload")
					continue
				}

				decodedCount++
				fmt.Print(display.FormatCertificate(
					claims.HCert.Person,
					claims.HCert.DateOfBirth,
					firstVaccine(claims.HCert.Vaccine),
					firstTest(claims.HCert.Test),
					firstRecovery(claims.HCert.Recovery),
					unixTime(claims.Iat),
					unixTime(claims.Exp),
				))
			}

			if decodedCount == 0 {
				return fmt.Errorf("no certificate decoded")
			}
			return nil
		},
	}

	return cmd
}
