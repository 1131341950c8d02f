package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *command) initSignerCmd() {
	cmd := &cobra.Command{
		Use:   "signer",
		Short: "Print the signer id for a signing seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := c.signingKey()
			if err != nil {
				return err
			}
			if kp == nil {
				return errors.New("no signing seed, set --" + optionNameSignSeed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), kp.SignerID())
			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.bindFlags(cmd)
		},
	}

	cmd.Flags().String(optionNameSignSeed, "", "32 byte hex seed of the Ed25519 signing key")

	c.root.AddCommand(cmd)
}
