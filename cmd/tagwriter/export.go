package main

import (
	"context"
	"fmt"

	"github.com/juren53/tagwriter/pkg/exchange"
	"github.com/spf13/cobra"
)

var (
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the metadata of an image file to JSON",
	Long:  `Read the metadata of an image file and save it as a flat JSON document, suitable for re-import with 'tagwriter import'.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		out := exportOut
		if out == "" {
			out = path + ".json"
		}

		cfg := loadSession()
		svc, err := newService(cfg)
		if err != nil {
			fatal("Failed to initialize tagwriter", err)
		}

		rec, err := svc.Load(context.Background(), path)
		if err != nil {
			fatal("Failed to read metadata", err)
		}

		if err := exchange.Export(rec, out); err != nil {
			fatal("Failed to export metadata", err)
		}

		fmt.Printf("Metadata exported to %s\n", out)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (default: <file>.json)")
}
