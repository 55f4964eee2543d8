package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dtex/neuron/internal/services"
	"github.com/dtex/neuron/pkg/serializer"
)

func newPurgeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "purge <job>",
		Short: "Remove a job and its workers from the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCache(cmd.Context(), opts.cfg.Cache, serializer.NewRegistry())
			if err != nil {
				return err
			}
			defer c.Close()

			if err := services.NewCacheService(c).Purge(cmd.Context(), args[0]); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "purged %s\n", args[0])
			return nil
		},
	}
}
