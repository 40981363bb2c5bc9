package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	readJSON bool
)

var readCmd = &cobra.Command{
	Use:   "read [file]",
	Short: "Read the metadata of an image file",
	Long:  `Read the logical metadata fields of an image file. Outputs aligned text by default, or a JSON object with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		cfg := loadSession()
		svc, err := newService(cfg)
		if err != nil {
			fatal("Failed to initialize tagwriter", err)
		}

		rec, err := svc.Load(context.Background(), path)
		if err != nil {
			fatal("Failed to read metadata", err)
		}

		recordRecent(cfg, path)
		saveSession(cfg)

		if readJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(rec.Values()); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, field := range svc.Registry().Fields() {
			fmt.Printf("%-20s %s\n", field.Label+":", rec.Get(field.Name))
		}
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
}
