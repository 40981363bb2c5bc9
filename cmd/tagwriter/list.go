package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/juren53/tagwriter/pkg/session"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the image files in a directory",
	Long:  `List the image files of a directory in the order the next/previous navigation walks them.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		files, err := session.ScanImages(dir)
		if err != nil {
			fatal("Failed to scan directory", err)
		}

		for _, f := range files {
			fmt.Println(filepath.Base(f))
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "No image files found")
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
