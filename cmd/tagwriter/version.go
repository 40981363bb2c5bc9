package main

import (
	"context"
	"fmt"

	"github.com/juren53/tagwriter"
	"github.com/juren53/tagwriter/pkg/adapters/exiftool"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tagwriter",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tagwriter version %s\n", tagwriter.Version)

		backend, err := exiftool.New(exiftool.Config{Path: exiftoolPath})
		if err != nil {
			fmt.Println("exiftool not available")
			return
		}
		if v, err := backend.Version(context.Background()); err == nil {
			fmt.Printf("exiftool version %s\n", v)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
