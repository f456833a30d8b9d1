package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/psychics/internal/manager"
	conceptconfig "github.com/KirkDiggler/psychics/internal/repositories/concept_config"
	"github.com/KirkDiggler/psychics/internal/watcher"
)

var (
	writeDefaults bool
	watch         bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load every concept and report binding results",
	Long: `Load every concept from the source and report which bound, which were
rejected and which abilities failed to initialize. Exits non-zero when any
concept is rejected.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&writeDefaults, "write-defaults", false, "write missing keys back with their defaults")
	validateCmd.Flags().BoolVar(&watch, "watch", false, "revalidate whenever the concept directory changes")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch && sourceKind != sourceFile {
		return fmt.Errorf("--watch needs --source %s", sourceFile)
	}

	source, cleanup, err := newSource()
	if err != nil {
		return err
	}
	defer cleanup()

	mgr, err := newManager(source)
	if err != nil {
		return err
	}
	defer mgr.Close(ctx)

	out := cmd.OutOrStdout()
	rejected, err := validateOnce(ctx, out, mgr)
	if err != nil {
		return err
	}

	if !watch {
		if rejected > 0 {
			return fmt.Errorf("%d concept(s) rejected", rejected)
		}
		return nil
	}

	w, err := watcher.New(&watcher.Config{
		Dir:        conceptDir,
		Extensions: conceptconfig.Extensions,
		OnChange: func(ctx context.Context, files []string) {
			fmt.Fprintf(out, "\nChanged: %s\n", strings.Join(files, ", "))
			if _, err := validateOnce(ctx, out, mgr); err != nil {
				slog.ErrorContext(ctx, "Revalidation failed", "error", err)
			}
		},
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintf(out, "\nWatching %s, press Ctrl+C to stop\n", conceptDir)
	<-ctx.Done()
	return nil
}

func validateOnce(ctx context.Context, out io.Writer, mgr *manager.Manager) (int, error) {
	result, err := mgr.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load concepts: %w", err)
	}

	for _, name := range result.Loaded {
		fmt.Fprintf(out, "ok      %s\n", name)
	}
	for _, r := range result.Rejected {
		fmt.Fprintf(out, "REJECT  %s: %v\n", r.Concept, r.Err)
	}
	for _, f := range result.ModuleFailures {
		fmt.Fprintf(out, "ABILITY %s/%s: %v\n", f.Concept, f.Ability, f.Err)
	}
	fmt.Fprintf(out, "%d loaded, %d rejected, %d ability failures\n",
		len(result.Loaded), len(result.Rejected), len(result.ModuleFailures))

	if writeDefaults {
		written, err := mgr.WriteDefaults(ctx)
		if err != nil {
			return len(result.Rejected), fmt.Errorf("failed to write defaults: %w", err)
		}
		for _, name := range written.Updated {
			fmt.Fprintf(out, "wrote defaults to %s\n", name)
		}
	}

	return len(result.Rejected), nil
}
