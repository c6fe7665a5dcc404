package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	portalbus "github.com/aetherweave/go-portalbus"
	"github.com/aetherweave/go-portalbus/pkg/types"
)

// catalogEntry 目录条目
type catalogEntry struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Payload   string `json:"payload"`
}

func newCatalogCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the canonical event catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := catalog()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "EVENT\tDIRECTION\tPAYLOAD")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Direction, e.Payload)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出")
	return cmd
}

func catalog() []catalogEntry {
	names := types.Catalogue()
	entries := make([]catalogEntry, 0, len(names))
	for _, name := range names {
		payload, _ := types.NewPayload(name)
		entries = append(entries, catalogEntry{
			Name:      name.String(),
			Direction: types.DirectionOf(name).String(),
			Payload:   fmt.Sprintf("%T", payload),
		})
	}
	return entries
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), portalbus.VersionInfo())
		},
	}
}
