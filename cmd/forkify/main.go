// forkify is a terminal client for the forkify recipe API: search recipes,
// scale servings, keep bookmarks and a shopping list, and upload your own.
//
// Usage:
//
//	forkify [--offline] [--db path] [--config file]
//	forkify search <query>
//	forkify show <id>
//	forkify export <file.xlsx|file.csv>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/forkify/internal/command"
	"github.com/hammamikhairi/forkify/internal/config"
	"github.com/hammamikhairi/forkify/internal/display"
	"github.com/hammamikhairi/forkify/internal/export"
	"github.com/hammamikhairi/forkify/internal/logger"
)

var (
	configPath     string
	offline        bool
	dbPath         string
	apiURL         string
	apiKey         string
	logFile        string
	resultsPerPage int
	verbose        bool
	quiet          bool
)

var rootCmd = &cobra.Command{
	Use:           "forkify",
	Short:         "Search, scale and bookmark recipes from the terminal",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Print the first page of results for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the saved shopping list to an .xlsx or .csv file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "forkify.yaml", "YAML config file (optional)")
	flags.BoolVar(&offline, "offline", false, "use the built-in recipe catalog instead of the API")
	flags.StringVar(&dbPath, "db", "", "bookmarks database file, or \":memory:\"")
	flags.StringVar(&apiURL, "api-url", "", "recipe API base URL")
	flags.StringVar(&apiKey, "api-key", "", "recipe API key")
	flags.StringVar(&logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	flags.IntVar(&resultsPerPage, "per-page", 0, "search results per page")
	flags.BoolVar(&verbose, "verbose", false, "enable verbose/debug logging")
	flags.BoolVar(&quiet, "quiet", false, "disable all logging")

	rootCmd.AddCommand(searchCmd, showCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers the flags the user set over the config file and
// environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("offline") {
		cfg.Offline = offline
	}
	if flags.Changed("db") {
		cfg.DBPath = dbPath
	}
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("per-page") {
		cfg.ResultsPerPage = resultsPerPage
	}
	switch {
	case quiet:
		cfg.LogLevel = "off"
	case verbose:
		cfg.LogLevel = "verbose"
	}
	return cfg, cfg.Validate()
}

// openLog directs logs to cfg.LogFile so the shell stays clean. The
// returned func closes the file.
func openLog(cfg config.Config) (*logger.Logger, func(), error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		if dir := filepath.Dir(cfg.LogFile); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			out = f
			closeFn = func() { f.Close() }
		}
	}

	log := logger.New(level, out)
	return log, func() {
		log.Sync()
		closeFn()
	}, nil
}

// withPage loads the configuration, logger and page, runs fn and tears
// everything down.
func withPage(cmd *cobra.Command, fn func(ctx context.Context, p *page, log *logger.Logger) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p, err := openPage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer p.Close()
	return fn(ctx, p, log)
}

func runShell(cmd *cobra.Command, _ []string) error {
	return withPage(cmd, func(ctx context.Context, p *page, log *logger.Logger) error {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		ui := display.NewUI(p.status)
		app := &cliApp{
			page:   p,
			parser: command.NewParser(log),
			out:    ui,
			log:    log,
		}

		fmt.Println(display.RenderBanner())
		fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
		fmt.Println()

		go func() {
			ui.WaitReady()
			app.run(ctx, ui.InputChan())
			ui.Quit()
		}()

		// Bubble Tea owns the terminal until quit.
		if err := ui.Run(); err != nil {
			log.Error("display: %v", err)
			return err
		}
		return nil
	})
}

// oneShot runs a single shell command against a fresh page, printing to
// stdout.
func oneShot(cmd *cobra.Command, c command.Command) error {
	return withPage(cmd, func(ctx context.Context, p *page, log *logger.Logger) error {
		rec := &errorRecorder{printer: display.NewUI(nil)}
		app := &cliApp{page: p, parser: command.NewParser(log), out: rec, log: log}
		app.handle(ctx, c)
		return rec.err
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	return oneShot(cmd, command.Command{Kind: command.Search, Arg: strings.Join(args, " ")})
}

func runShow(cmd *cobra.Command, args []string) error {
	return oneShot(cmd, command.Command{Kind: command.Open, Arg: args[0]})
}

func runExport(cmd *cobra.Command, args []string) error {
	return withPage(cmd, func(_ context.Context, p *page, _ *logger.Logger) error {
		items := p.svc().ShoppingList()
		if err := export.ToFile(args[0], items); err != nil {
			return err
		}
		fmt.Printf("Wrote %d items to %s\n", len(items), args[0])
		return nil
	})
}

// errorRecorder turns the first urgent line into the command's error.
type errorRecorder struct {
	printer
	err error
}

func (r *errorRecorder) PrintUrgent(text string) {
	r.printer.PrintUrgent(text)
	if r.err == nil {
		r.err = fmt.Errorf("%s", strings.TrimSpace(text))
	}
}
