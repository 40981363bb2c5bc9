package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/juren53/tagwriter/pkg/session"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Watch a file and re-read its metadata on change",
	Long: `Watch an image file and print its metadata again whenever another
program modifies it. Stops on Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		cfg := loadSession()
		svc, err := newService(cfg)
		if err != nil {
			fatal("Failed to initialize tagwriter", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		changes, err := session.WatchFile(ctx, path)
		if err != nil {
			fatal("Failed to watch file", err)
		}

		fmt.Printf("Watching %s (Ctrl-C to stop)\n", path)
		for range changes {
			rec, err := svc.Load(ctx, path)
			if err != nil {
				fmt.Printf("-- reload failed: %v\n", err)
				continue
			}
			fmt.Println("-- file changed")
			for _, field := range svc.Registry().Fields() {
				fmt.Printf("%-20s %s\n", field.Label+":", rec.Get(field.Name))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
