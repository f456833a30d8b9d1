package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/psychics/internal/tooltip"
)

var plain bool

var tooltipCmd = &cobra.Command{
	Use:   "tooltip [name]",
	Short: "Print the tooltip of a concept",
	Args:  cobra.ExactArgs(1),
	RunE:  runTooltip,
}

func init() {
	tooltipCmd.Flags().BoolVar(&plain, "plain", false, "print without terminal styling")
}

func runTooltip(cmd *cobra.Command, args []string) error {
	concept, err := loadConcept(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	doc := concept.RenderTooltip()
	out := cmd.OutOrStdout()
	if plain {
		fmt.Fprintln(out, doc.String())
		return nil
	}

	fmt.Fprintln(out, tooltip.NewANSIRenderer(out).Document(doc))
	return nil
}
