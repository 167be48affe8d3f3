package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkarolak/hostprobe/pkg/collector"
	"github.com/mkarolak/hostprobe/pkg/platform"
	"github.com/mkarolak/hostprobe/pkg/render"
	"github.com/mkarolak/hostprobe/pkg/secscan"
	"github.com/mkarolak/hostprobe/pkg/source"
)

func main() {
	root := &cobra.Command{
		Use:   "hostprobe",
		Short: "Collect a normalized reconnaissance report of the local host",
	}

	root.AddCommand(newCollectCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCollectCmd() *cobra.Command {
	opts := collector.DefaultOptions()
	var (
		output     string
		format     string
		timeout    time.Duration
		signatures string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect host identity, network, hardware and security-tool facts",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				var err error
				logger, err = zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("build logger: %w", err)
				}
				defer logger.Sync() //nolint:errcheck
			}
			opts.Logger = logger

			if signatures != "" {
				extra, err := secscan.LoadSignatures(signatures)
				if err != nil {
					return err
				}
				opts.Signatures.Merge(extra)
				logger.Info("extra signatures loaded", zap.Int("count", len(extra)))
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			kind := platform.Detect()
			src := source.NewExec(timeout, logger)

			fmt.Fprintf(os.Stderr, "Collecting host report (%s)...\n", kind)
			report := collector.Collect(ctx, src, kind, opts)

			w := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := render.New(render.Format(format)).Render(w, report); err != nil {
				return fmt.Errorf("render report: %w", err)
			}
			if output != "" {
				fmt.Fprintf(os.Stderr, "Report written to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "output file path (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or table")
	cmd.Flags().DurationVar(&timeout, "timeout", source.DefaultTimeout, "per-command timeout")
	cmd.Flags().StringVar(&signatures, "signatures", "", "YAML file with extra process-to-product signatures")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log collection details to stderr")

	return cmd
}
