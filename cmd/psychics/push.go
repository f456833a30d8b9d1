package main

import (
	"fmt"

	"github.com/spf13/cobra"

	conceptconfig "github.com/KirkDiggler/psychics/internal/repositories/concept_config"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Copy every concept file from --dir to Redis",
	Args:  cobra.NoArgs,
	RunE:  runPush,
}

func runPush(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	files, err := conceptconfig.NewFile(&conceptconfig.FileConfig{Dir: conceptDir})
	if err != nil {
		return err
	}

	target, cleanup, err := newRedisSource()
	if err != nil {
		return err
	}
	defer cleanup()

	list, err := files.List(ctx, conceptconfig.ListInput{})
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", conceptDir, err)
	}

	out := cmd.OutOrStdout()
	for _, name := range list.Names {
		doc, err := files.Get(ctx, conceptconfig.GetInput{Name: name})
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		put, err := target.Put(ctx, conceptconfig.PutInput{Name: name, Data: doc.Data})
		if err != nil {
			return fmt.Errorf("failed to push %s: %w", name, err)
		}

		action := "updated"
		if put.Created {
			action = "created"
		}
		fmt.Fprintf(out, "%s %s\n", action, name)
	}

	fmt.Fprintf(out, "pushed %d concept(s) to %s\n", len(list.Names), redisAddr)
	return nil
}
