package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bilusteknoloji/playdetails/internal/batch"
	"github.com/bilusteknoloji/playdetails/internal/catalog"
	"github.com/bilusteknoloji/playdetails/internal/config"
	"github.com/bilusteknoloji/playdetails/internal/money"
	"github.com/bilusteknoloji/playdetails/internal/product"
	"github.com/bilusteknoloji/playdetails/internal/render"
)

var version = "0.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd(cfg).ExecuteContext(ctx)
}

func newRootCmd(cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "playdetails",
		Short:         "Inspect billing product details documents",
		Long:          "playdetails parses the product details JSON returned by app-store billing APIs and renders offers and pricing phases.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	parseCmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse product details documents (\"-\" or no files reads stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, cfg)
		},
	}

	parseCmd.Flags().StringP("type", "t", cfg.ProductType, "Product type: inapp or subs")
	parseCmd.Flags().StringP("output", "o", cfg.Output, "Output format: text, json, yaml or csv")
	parseCmd.Flags().IntP("jobs", "j", cfg.Jobs, "Max concurrent parsers (default: GOMAXPROCS)")
	parseCmd.Flags().Bool("keep-going", false, "Report malformed documents instead of stopping at the first one")

	generateCmd := &cobra.Command{
		Use:   "generate [product ids...]",
		Short: "Generate product details documents for the given product IDs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, cfg)
		},
	}

	generateCmd.Flags().StringP("type", "t", cfg.ProductType, "Product type: inapp or subs")
	generateCmd.Flags().String("price", "5.00", "Price in currency units")
	generateCmd.Flags().String("currency", "USD", "ISO 4217 currency code")
	generateCmd.Flags().String("description", "dummy description", "Product description")
	generateCmd.Flags().String("period", "P1M", "ISO 8601 billing period for subscriptions")

	rootCmd.AddCommand(parseCmd, generateCmd)

	return rootCmd
}

// parseFlags holds parsed CLI flags for the parse command.
type parseFlags struct {
	productType string
	output      string
	jobs        int
	keepGoing   bool
	verbose     bool
}

func readParseFlags(cmd *cobra.Command) parseFlags {
	productType, _ := cmd.Flags().GetString("type")
	output, _ := cmd.Flags().GetString("output")
	jobs, _ := cmd.Flags().GetInt("jobs")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return parseFlags{productType, output, jobs, keepGoing, verbose}
}

func runParse(cmd *cobra.Command, args []string, cfg config.Config) error {
	flags := readParseFlags(cmd)

	format, err := render.ParseFormat(flags.output)
	if err != nil {
		return err
	}

	logger := newLogger(logLevel(cfg, flags.verbose), cmd.ErrOrStderr())

	requests, err := readRequests(cmd.InOrStdin(), args, product.Type(flags.productType))
	if err != nil {
		return err
	}

	parser := batch.New(
		batch.WithMaxWorkers(flags.jobs),
		batch.WithKeepGoing(flags.keepGoing),
		batch.WithLogger(logger),
	)

	results, err := parser.Parse(cmd.Context(), requests)
	if err != nil {
		return err
	}

	docs := make([]render.Document, 0, len(results))
	failed := 0

	for _, r := range results {
		if r.Err != nil {
			failed++
			docs = append(docs, render.Failed(r.Name, r.Err))

			continue
		}

		docs = append(docs, render.FromDetails(r.Name, r.Details))
	}

	if err := render.Render(cmd.OutOrStdout(), format, docs); err != nil {
		return fmt.Errorf("rendering output: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents could not be parsed", failed, len(results))
	}

	return nil
}

// readRequests reads each named file, or stdin for "-" or no arguments.
func readRequests(stdin io.Reader, paths []string, productType product.Type) ([]batch.Request, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	requests := make([]batch.Request, 0, len(paths))

	for _, path := range paths {
		name, data, err := readInput(stdin, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		requests = append(requests, batch.Request{
			Name:        name,
			ProductType: productType,
			JSON:        string(data),
		})
	}

	return requests, nil
}

func readInput(stdin io.Reader, path string) (string, []byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)

		return "<stdin>", data, err
	}

	data, err := os.ReadFile(path)

	return filepath.Base(path), data, err
}

func runGenerate(cmd *cobra.Command, ids []string, cfg config.Config) error {
	productType, _ := cmd.Flags().GetString("type")
	price, _ := cmd.Flags().GetString("price")
	currency, _ := cmd.Flags().GetString("currency")
	description, _ := cmd.Flags().GetString("description")
	billingPeriod, _ := cmd.Flags().GetString("period")
	verbose, _ := cmd.Flags().GetBool("verbose")

	micros, err := money.ParseAmount(price)
	if err != nil {
		return fmt.Errorf("--price: %w", err)
	}

	gen := catalog.New(
		catalog.WithPriceMicros(micros),
		catalog.WithCurrency(currency),
		catalog.WithDescription(description),
		catalog.WithBillingPeriod(billingPeriod),
		catalog.WithLogger(newLogger(logLevel(cfg, verbose), cmd.ErrOrStderr())),
	)

	docs, err := gen.Generate(product.Type(productType), ids)
	if err != nil {
		return fmt.Errorf("generating details: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, doc := range docs {
		if _, err := fmt.Fprintln(out, doc); err != nil {
			return err
		}
	}

	return nil
}

func logLevel(cfg config.Config, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}

	return cfg.LogLevel
}

func newLogger(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
