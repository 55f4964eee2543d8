package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dtex/neuron/internal/models"
	"github.com/dtex/neuron/internal/services"
	"github.com/dtex/neuron/pkg/serializer"
)

func newInspectCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the jobs and workers held by the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := openCache(cmd.Context(), opts.cfg.Cache, serializer.NewRegistry())
			if err != nil {
				return err
			}
			defer c.Close()

			entries, err := services.NewCacheService(c).Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			printSnapshot(cmd.OutOrStdout(), c.Namespace(), entries)
			return nil
		},
	}
}

func printSnapshot(out io.Writer, namespace string, entries []models.CacheEntry) {
	title := color.New(color.FgCyan, color.Bold)
	name := color.New(color.FgGreen, color.Bold)
	faint := color.New(color.Faint)

	title.Fprintf(out, "namespace %s: %d job(s)\n", namespace, len(entries))
	for _, e := range entries {
		name.Fprintf(out, "%s", e.Name)
		fmt.Fprintf(out, " (%d worker(s))\n", len(e.Workers))

		for _, k := range slices.Sorted(maps.Keys(e.Properties)) {
			faint.Fprintf(out, "  %s = %s\n", k, render(e.Properties[k]))
		}
		for _, w := range e.Workers {
			fmt.Fprintf(out, "  - %s %s\n", w.ID, render(w.Args))
		}
	}
}

func render(v any) string {
	if ref, ok := v.(serializer.Ref); ok {
		return "<work " + ref.Name + ">"
	}
	if _, ok := v.(*serializer.Script); ok {
		return "<script>"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
