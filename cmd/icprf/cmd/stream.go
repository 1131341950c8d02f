package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (c *command) initConstrainCmd() {
	cmd := &cobra.Command{
		Use:   "constrain <index>",
		Short: "Write a handover frame with a key constrained at index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			constraint, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse index: %w", err)
			}
			r, err := c.runner()
			if err != nil {
				return err
			}
			sk, err := c.masterSecret()
			if err != nil {
				return err
			}
			signer, err := c.signingKey()
			if err != nil {
				return err
			}
			return r.constrain(cmd.OutOrStdout(), sk, constraint, signer)
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.bindFlags(cmd)
		},
	}

	cmd.Flags().String(optionNameSignSeed, "", "sign the handover with the Ed25519 key derived from this 32 byte hex seed")

	c.root.AddCommand(cmd)
}

func (c *command) initDiscloseCmd() {
	cmd := &cobra.Command{
		Use:   "disclose",
		Short: "Write disclosure frames for consecutive indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.runner()
			if err != nil {
				return err
			}
			sk, err := c.masterSecret()
			if err != nil {
				return err
			}
			return r.disclose(cmd.OutOrStdout(), sk, c.config.GetUint64(optionNameFrom), c.config.GetUint64(optionNameCount))
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.bindFlags(cmd)
		},
	}

	cmd.Flags().Uint64(optionNameFrom, 0, "first index to disclose")
	cmd.Flags().Uint64(optionNameCount, 1, "number of indices to disclose")

	c.root.AddCommand(cmd)
}

func (c *command) initSealCmd() {
	cmd := &cobra.Command{
		Use:   "seal <message>...",
		Short: "Write an envelope frame readable once the index is disclosed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.runner()
			if err != nil {
				return err
			}
			sk, err := c.masterSecret()
			if err != nil {
				return err
			}
			message := strings.Join(args, " ")
			return r.seal(cmd.OutOrStdout(), sk, c.config.GetUint64(optionNameIndex), []byte(message))
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.bindFlags(cmd)
		},
	}

	cmd.Flags().Uint64(optionNameIndex, 0, "index whose secret seals the message")

	c.root.AddCommand(cmd)
}

func (c *command) initVerifyCmd() {
	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Verify a frame stream and print opened envelopes and the final constraint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.logger(cmd)
			if err != nil {
				return err
			}
			r, err := c.runner()
			if err != nil {
				return err
			}
			trusted, err := c.trustedSigner()
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) > 0 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			res, err := r.verify(in, cmd.OutOrStdout(), logger, trusted)
			if err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"disclosures": res.Disclosures,
				"opened":      res.Opened,
			}).Info("stream verified")

			if !res.Started {
				fmt.Fprintln(cmd.OutOrStdout(), "constraint: none")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "constraint: %d\n", res.Constraint)
			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.bindFlags(cmd)
		},
	}

	cmd.Flags().String(optionNameSigner, "", "require a handover signed by this signer id")

	c.root.AddCommand(cmd)
}
