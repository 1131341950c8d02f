package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *command) initEvalCmd() {
	cmd := &cobra.Command{
		Use:   "eval <index>",
		Short: "Print the secret at an index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.ParseUint(args[0], 10, 64)
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
			secret, err := r.evaluate(sk, index)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(secret[:]))
			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.bindFlags(cmd)
		},
	}

	c.root.AddCommand(cmd)
}
