package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chessdex"
	"chessdex/ocr"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// extract flags
	outCSV      string
	imageDir    string
	pageList    []int
	strategy    string
	maxDiagrams int
	withFEN     bool
	withOCR     bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chessdex",
	Short: "chessdex - extract chess tactics diagrams from book dumps",
	Long: `chessdex reads a block-dump of a chess tactics book, pairs each
diagram header with its board image and solution text, and exports the
results as CSV plus cropped board images.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// extractCmd runs the full pipeline and writes the CSV.
var extractCmd = &cobra.Command{
	Use:   "extract [input.json]",
	Short: "Extract diagram records to CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, &cfg, args)
		if cfg.Input == "" {
			return fmt.Errorf("no input file; pass one as an argument or set input: in the config")
		}

		engineCfg, err := cfg.EngineConfig()
		if err != nil {
			return err
		}

		ext := chessdex.OpenJSON(cfg.Input).
			EngineConfig(engineCfg).
			HeaderPattern(cfg.Patterns.Header).
			SolutionPatterns(cfg.Patterns.Solutions...).
			TriggerPhrase(cfg.Patterns.Trigger).
			WithObserver(zapObserver{log: logger})
		if len(cfg.Pages) > 0 {
			ext = ext.Pages(cfg.Pages...)
		}
		if cfg.Output.Images != "" {
			ext = ext.WithImageDir(cfg.Output.Images)
		}
		if cfg.Chessvision.Enabled {
			ext = ext.WithLookup(cfg.ChessvisionClient())
		}
		if cfg.OCR.Enabled {
			reader, err := ocr.NewReader()
			if err != nil {
				return err
			}
			defer reader.Close()
			if cfg.OCR.Language != "" {
				if err := reader.SetLanguage(cfg.OCR.Language); err != nil {
					return err
				}
			}
			ext = ext.WithOCR(reader)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out, err := os.Create(cfg.Output.CSV)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer out.Close()

		warnings, err := ext.ExportCSV(ctx, out)
		for _, w := range warnings {
			logger.Warn("extraction warning", zap.String("warning", w.String()))
		}
		if err != nil {
			return err
		}

		logger.Info("extraction complete",
			zap.String("input", cfg.Input),
			zap.String("csv", cfg.Output.CSV))
		return nil
	},
}

// headersCmd lists the diagram headers found in the input.
var headersCmd = &cobra.Command{
	Use:   "headers [input.json]",
	Short: "List diagram headers without extracting",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, &cfg, args)
		if cfg.Input == "" {
			return fmt.Errorf("no input file; pass one as an argument or set input: in the config")
		}

		ext := chessdex.OpenJSON(cfg.Input).HeaderPattern(cfg.Patterns.Header)
		if len(cfg.Pages) > 0 {
			ext = ext.Pages(cfg.Pages...)
		}

		headers, warnings, err := ext.Headers(cmd.Context())
		for _, w := range warnings {
			logger.Warn("extraction warning", zap.String("warning", w.String()))
		}
		if err != nil {
			return err
		}

		for _, h := range headers {
			fmt.Fprintf(cmd.OutOrStdout(), "page %3d  %s. %s, %s %s\n",
				h.Page, h.Number, h.Players(), h.Site, h.Year)
		}
		logger.Info("headers listed", zap.Int("count", len(headers)))
		return nil
	},
}

// applyFlags lets command line flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *Config, args []string) {
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if cmd.Flags().Changed("out") {
		cfg.Output.CSV = outCSV
	}
	if cmd.Flags().Changed("images") {
		cfg.Output.Images = imageDir
	}
	if cmd.Flags().Changed("pages") {
		cfg.Pages = pageList
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = strategy
	}
	if cmd.Flags().Changed("max") {
		cfg.MaxDiagrams = maxDiagrams
	}
	if cmd.Flags().Changed("fen") {
		cfg.Chessvision.Enabled = withFEN
	}
	if cmd.Flags().Changed("ocr") {
		cfg.OCR.Enabled = withOCR
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	extractCmd.Flags().StringVarP(&outCSV, "out", "o", "diagrams.csv", "output CSV path")
	extractCmd.Flags().StringVar(&imageDir, "images", "diagram_images", "directory for cropped board images")
	extractCmd.Flags().IntSliceVar(&pageList, "pages", nil, "pages to process (default all)")
	extractCmd.Flags().StringVar(&strategy, "strategy", "", "search strategy")
	extractCmd.Flags().IntVar(&maxDiagrams, "max", 0, "stop after this many diagrams (0 = no cap)")
	extractCmd.Flags().BoolVar(&withFEN, "fen", false, "look up positions via chessvision")
	extractCmd.Flags().BoolVar(&withOCR, "ocr", false, "recover text from scanned pages (needs an ocr-tagged build)")

	headersCmd.Flags().IntSliceVar(&pageList, "pages", nil, "pages to process (default all)")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(headersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
