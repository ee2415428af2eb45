package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gumtree/pkg/config"
	"github.com/Sumatoshi-tech/gumtree/pkg/gumtree"
	"github.com/Sumatoshi-tech/gumtree/pkg/loggerutil"
)

// diffMinArgs/diffMaxArgs bound the positional arguments: an optional
// action name followed by the two input files.
const (
	diffMinArgs = 2
	diffMaxArgs = 3
)

// ErrUnsupportedAction is returned for an action name outside
// {diff, jsondiff, html, profile}.
var ErrUnsupportedAction = errors.New("unsupported action")

func diffCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "diff [action] fileA.json fileB.json",
		Short: "Compare two parsed syntax trees",
		Long: `Compare two parsed syntax trees and report their structural diff.

Examples:
  gumtree diff a.json b.json               # GumTree text mode
  gumtree diff jsondiff a.json b.json       # JSON diff mode
  gumtree diff html a.json b.json           # HTML summary
  gumtree diff profile a.json b.json        # profile table`,
		Args: cobra.RangeArgs(diffMinArgs, diffMaxArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			action, fileA, fileB := parseDiffArgs(args)

			return runDiff(action, fileA, fileB, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout, or a generated name for html mode)")

	return cmd
}

func parseDiffArgs(args []string) (action, fileA, fileB string) {
	if len(args) == diffMaxArgs {
		return args[0], args[1], args[2]
	}

	return "diff", args[0], args[1]
}

func runDiff(action, fileA, fileB, output string) error {
	_, cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	bindFlagOverrides(cfg)

	level, err := loggerutil.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	logger, err := loggerutil.New(os.Stderr, level, loggerutil.Format(cfg.Logging.Format))
	if err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	params := gumtree.Params{
		MinHeight:     cfg.Matcher.MinHeight,
		MinSimilarity: cfg.Matcher.MinSimilarity,
		MaxSize:       cfg.Matcher.MaxSize,
	}

	loggerutil.WithPhase(logger, string(gumtree.PhaseParse)).Debug("parsing input trees")

	t1, err := gumtree.ParseFile(fileA)
	if err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	t2, err := gumtree.ParseFile(fileB)
	if err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	return dispatchAction(context.Background(), action, t1, t2, params, output, cfg.Metrics.Addr, logger)
}

func dispatchAction(
	ctx context.Context, action string, t1, t2 *gumtree.Tree, params gumtree.Params,
	output, metricsAddr string, logger *slog.Logger,
) error {
	switch action {
	case "diff":
		return runTextDiff(ctx, t1, t2, params, output, logger)
	case "jsondiff":
		return runJSONDiff(t1, t2, params, output, logger)
	case "html":
		return runHTMLSummary(ctx, t1, t2, params, output, logger)
	case "profile":
		return runProfile(t1, t2, params, output, metricsAddr, logger)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}
}

func runTextDiff(ctx context.Context, t1, t2 *gumtree.Tree, params gumtree.Params, output string, logger *slog.Logger) error {
	m, actions, err := gumtree.Diff(ctx, t1, t2, params)
	if err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	w, closeFn, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeFn()

	logger.Debug("encoding text diff")

	if err := gumtree.EncodeText(w, t1, t2, m, actions); err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	printRunSummary(len(m.Pairs()), gumtree.CountActions(actions))

	return nil
}

// printRunSummary prints a colored one-line recap of a diff run to stderr,
// separate from the machine-readable diff written to w.
func printRunSummary(matchCount int, counts gumtree.ActionCounts) {
	color.New(color.FgGreen).Fprintf(os.Stderr, "gumtree: %d matches, %d inserts, %d deletes, %d updates, %d moves\n",
		matchCount, counts.Insert, counts.Delete, counts.Update, counts.Move)
}

// runJSONDiff computes the mapping only (no edit script, which would
// mutate t1 with phantom nodes) so the JSON tree pair mirrors the inputs.
func runJSONDiff(t1, t2 *gumtree.Tree, params gumtree.Params, output string, logger *slog.Logger) error {
	m := gumtree.NewMapping(t1, t2)
	gumtree.TopDown(t1, t2, m, params)
	gumtree.BottomUp(t1, t2, m, params)
	gumtree.Annotate(t1, t2, m)

	w, closeFn, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeFn()

	logger.Debug("encoding json diff")

	if err := gumtree.EncodeJSON(w, t1, t2, m); err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	return nil
}

func runHTMLSummary(ctx context.Context, t1, t2 *gumtree.Tree, params gumtree.Params, output string, logger *slog.Logger) error {
	m, actions, err := gumtree.Diff(ctx, t1, t2, params)
	if err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	if output == "" {
		output = "gumtree-summary.html"
	}

	w, closeFn, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeFn()

	logger.Debug("rendering html summary")

	if err := gumtree.WriteHTMLSummary(w, t1, t2, m, actions); err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	return nil
}

func runProfile(t1, t2 *gumtree.Tree, params gumtree.Params, output, metricsAddr string, logger *slog.Logger) error {
	_, _, profile, err := gumtree.RunProfiled(t1, t2, params)
	if err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	w, closeFn, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := profile.WriteTable(w); err != nil {
		return fmt.Errorf("gumtree: %w", err)
	}

	if metricsAddr == "" {
		return nil
	}

	return serveMetricsUntilInterrupt(metricsAddr, profile, logger)
}

func serveMetricsUntilInterrupt(addr string, profile *gumtree.Profile, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", profile.Handler())

	server := &http.Server{Addr: addr, Handler: mux} //nolint:gosec // CLI-local debug endpoint, no untrusted network exposure

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	fmt.Fprintf(os.Stdout, "serving metrics on %s/metrics (ctrl-c to exit)\n", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	return nil
}

func openOutput(path string) (w *os.File, closeFn func(), err error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	f, createErr := os.Create(path)
	if createErr != nil {
		return nil, nil, fmt.Errorf("gumtree: create output file %s: %w", path, createErr)
	}

	return f, func() { f.Close() }, nil
}

func bindFlagOverrides(cfg *config.Config) {
	if flagMinH >= 0 {
		cfg.Matcher.MinHeight = flagMinH
	}

	if flagMinSim >= 0 {
		cfg.Matcher.MinSimilarity = flagMinSim
	}

	if flagMaxSize >= 0 {
		cfg.Matcher.MaxSize = flagMaxSize
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, gumtree.ErrMissingRoot),
		errors.Is(err, gumtree.ErrInvalidChildren),
		errors.Is(err, gumtree.ErrInvalidOffset),
		errors.Is(err, gumtree.ErrSchemaValidation):
		return exitMalformedInput
	case errors.Is(err, gumtree.ErrUnmappedParent),
		errors.Is(err, gumtree.ErrInconsistentMapping):
		return exitInternalError
	default:
		return exitInternalError
	}
}
