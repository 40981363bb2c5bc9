package main

import (
	"fmt"
	"strings"

	"github.com/juren53/tagwriter"
	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the editable metadata fields",
	Long:  `List every logical field with its label, length limit and the concrete tags it maps to, in read-priority order.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, field := range tagwriter.DefaultRegistry().Fields() {
			tags := make([]string, 0, len(field.Candidates))
			for _, tag := range field.Candidates {
				tags = append(tags, tag.String())
			}
			limit := ""
			if field.MaxLength > 0 {
				limit = fmt.Sprintf(" (max %d)", field.MaxLength)
			}
			fmt.Printf("%s%s\n", field.Label, limit)
			fmt.Printf("  name: %s\n", field.Name)
			fmt.Printf("  tags: %s\n", strings.Join(tags, ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
