package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/psychics/internal/entities"
	"github.com/KirkDiggler/psychics/internal/tooltip"
)

var statFlags map[string]string

var bookCmd = &cobra.Command{
	Use:   "book [name]",
	Short: "Print the tooltip book of a concept",
	Long: `Print the book handed to players for a concept. Ability statistics are
evaluated against the attribute values given with --stat, e.g.

  book pyromancer --stat attack-damage=10 --stat level=5`,
	Args: cobra.ExactArgs(1),
	RunE: runBook,
}

func init() {
	bookCmd.Flags().StringToStringVar(&statFlags, "stat", nil, "attribute value used to evaluate ability stats (attribute=value)")
	bookCmd.Flags().BoolVar(&plain, "plain", false, "print without terminal styling")
}

func runBook(cmd *cobra.Command, args []string) error {
	lookup, err := parseStats(statFlags)
	if err != nil {
		return err
	}

	concept, err := loadConcept(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	book := concept.CreateTooltipBook(lookup)
	out := cmd.OutOrStdout()
	if plain {
		fmt.Fprintln(out, book.String())
		return nil
	}

	fmt.Fprintln(out, tooltip.NewANSIRenderer(out).Book(book))
	return nil
}

// parseStats builds a lookup from attribute=value pairs; missing attributes are zero
func parseStats(raw map[string]string) (tooltip.StatLookup, error) {
	values := make(map[entities.Attribute]float64, len(raw))
	for key, value := range raw {
		attr, err := entities.ParseAttribute(key)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		values[attr] = v
	}

	return func(stat entities.Statistic) float64 {
		return stat.Evaluate(func(a entities.Attribute) float64 { return values[a] })
	}, nil
}
