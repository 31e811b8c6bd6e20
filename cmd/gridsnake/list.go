package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rulesets",
	Long:  `Shows every ruleset that can be passed to --variant.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	printVariants(cmd.OutOrStdout())
}

func printVariants(w io.Writer) {
	variants := registry.List()
	if len(variants) == 0 {
		fmt.Fprintln(w, "No rulesets available.")
		return
	}

	fmt.Fprintln(w, "Available rulesets:")
	fmt.Fprintln(w)

	// Calculate column widths
	idW, titleW := len("ID"), len("Title")
	for _, v := range variants {
		idW = max(idW, len(v.ID))
		titleW = max(titleW, len(v.Title))
	}

	fmt.Fprintf(w, "  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Description")
	fmt.Fprintf(w, "  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "-----------")
	for _, v := range variants {
		fmt.Fprintf(w, "  %-*s  %-*s  %s\n", idW, v.ID, titleW, v.Title, v.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'gridsnake play --variant <id>' to play one.")
}
