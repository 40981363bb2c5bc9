package main

import (
	"context"
	"fmt"

	"github.com/juren53/tagwriter"
	"github.com/juren53/tagwriter/pkg/exchange"
	"github.com/spf13/cobra"
)

var (
	importBackup bool
)

var importCmd = &cobra.Command{
	Use:   "import [json] [file]",
	Short: "Import metadata from a JSON document into an image file",
	Long: `Load field values from a JSON document and write them to an image
file. Keys that are not known fields are ignored; both the flat export
format and the older wrapped {"metadata": {...}} format are accepted.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		jsonPath, imagePath := args[0], args[1]

		cfg := loadSession()
		svc, err := newService(cfg, tagwriter.WithBackup(importBackup || cfg.AutoBackup))
		if err != nil {
			fatal("Failed to initialize tagwriter", err)
		}

		rec, err := exchange.Import(svc.Registry(), jsonPath)
		if err != nil {
			fatal("Failed to import metadata", err)
		}

		backupPath, err := svc.Save(context.Background(), imagePath, rec)
		if err != nil {
			fatalSave(err, backupPath)
		}

		recordRecent(cfg, imagePath)
		saveSession(cfg)

		if backupPath != "" {
			fmt.Printf("Backup saved to %s\n", backupPath)
		}
		fmt.Printf("Metadata from %s written to %s\n", jsonPath, imagePath)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVarP(&importBackup, "backup", "b", false, "Copy the original file aside before writing")
}
