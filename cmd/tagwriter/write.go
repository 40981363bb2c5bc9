package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/juren53/tagwriter"
	"github.com/spf13/cobra"
)

var (
	writeSets   []string
	writeBackup bool
	writeClear  bool
	writeToday  bool
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write [file]",
	Short: "Write metadata fields to an image file",
	Long: `Update metadata fields on an image file. Existing values are read
first, so only the fields named with --set change. Each edit is written
to every namespace variant of the field; an empty value clears them.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		if len(writeSets) == 0 && !writeClear && !writeToday {
			fmt.Println("Error: nothing to write, use --set, --clear or --today")
			cmd.Usage()
			return
		}

		cfg := loadSession()
		svc, err := newService(cfg, tagwriter.WithBackup(writeBackup || cfg.AutoBackup))
		if err != nil {
			fatal("Failed to initialize tagwriter", err)
		}

		rec, err := svc.Load(context.Background(), path)
		if err != nil {
			fatal("Failed to read current metadata", err)
		}

		if writeClear {
			rec.Clear()
		}
		if writeToday {
			rec.SetToday(time.Now())
		}
		for _, pair := range writeSets {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				fatal("Invalid --set argument", fmt.Errorf("%q is not Field=Value", pair))
			}
			if err := rec.Set(name, value); err != nil {
				fatal("Unknown field", err)
			}
		}

		backupPath, err := svc.Save(context.Background(), path, rec)
		if err != nil {
			fatalSave(err, backupPath)
		}

		recordRecent(cfg, path)
		saveSession(cfg)

		if backupPath != "" {
			fmt.Printf("Backup saved to %s\n", backupPath)
		}
		fmt.Printf("Metadata written to %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringArrayVarP(&writeSets, "set", "s", nil, "Field assignment, e.g. --set Headline='Harbor at dawn' (repeatable)")
	writeCmd.Flags().BoolVarP(&writeBackup, "backup", "b", false, "Copy the original file aside before writing")
	writeCmd.Flags().BoolVar(&writeClear, "clear", false, "Clear all fields before applying --set values")
	writeCmd.Flags().BoolVar(&writeToday, "today", false, "Set the Date Created field to today")
}
