package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/juren53/tagwriter/pkg/adapters/exiftool"
	"github.com/spf13/cobra"
)

var (
	inspectJSON bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Dump every metadata tag of a file",
	Long:  `Show all raw metadata tags of a file as reported by ExifTool, not just the editable fields.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		inspector, err := exiftool.NewInspector()
		if err != nil {
			fatal("Failed to start exiftool", err)
		}
		defer inspector.Close()

		tags, err := inspector.Inspect(path)
		if err != nil {
			fatal("Failed to inspect file", err)
		}

		if inspectJSON {
			out := make(map[string]string, len(tags))
			for _, tag := range tags {
				out[tag.Name] = tag.Value
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(out); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, tag := range tags {
			fmt.Printf("%-40s %s\n", tag.Name, tag.Value)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output in JSON format")
}
