package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultProfileCount = 1000

func (c *command) initProfileCmd() {
	cmd := &cobra.Command{
		Use:   "profile [n]",
		Short: "Evaluate the first n indices and print the xor of their first bytes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			n := uint64(defaultProfileCount)
			if len(args) > 0 {
				if n, err = strconv.ParseUint(args[0], 10, 64); err != nil {
					return fmt.Errorf("parse count: %w", err)
				}
			}

			logger, err := c.logger(cmd)
			if err != nil {
				return err
			}
			r, err := c.runner()
			if err != nil {
				return err
			}
			sk, err := c.masterSecret()
			if err != nil {
				return err
			}

			start := time.Now()
			sum, err := r.checksum(sk, n)
			if err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"generator": c.config.GetString(optionNameGenerator),
				"count":     n,
				"elapsed":   time.Since(start),
			}).Info("profile done")

			fmt.Fprintln(cmd.OutOrStdout(), sum)
			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.bindFlags(cmd)
		},
	}

	c.root.AddCommand(cmd)
}
