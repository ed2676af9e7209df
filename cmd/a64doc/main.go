package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/a64doc"
	"github.com/fwojciec/a64doc/etree"
	"github.com/fwojciec/a64doc/fs"
	a64slog "github.com/fwojciec/a64doc/slog"
	"github.com/fwojciec/a64doc/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the record service. Opened only by commands
	// that need it.
	DB *sqlite.DB

	// Services for end-to-end testing. When nil, Run wires the production
	// implementations.
	Loader  a64doc.Loader
	Records a64doc.RecordService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("a64doc"),
		kong.Description("Extract an instruction catalog from the A64 XML documentation."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'a64doc --help' to see available commands")
	}

	if slices.Contains([]string{"help", "--help", "-h"}, args[0]) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := &Config{}
	if cli.Config != "" {
		if cfg, err = LoadConfig(cli.Config); err != nil {
			return err
		}
	}
	settings, err := cfg.Resolve(cli.Dir, cli.DB)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", a64doc.ErrorMessage(err))
		return err
	}
	deps.Sets = settings.Sets

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	loader := m.Loader
	if loader == nil {
		loader = etree.NewLoader(settings.Dir)
	}
	deps.Loader = a64slog.NewLoggingLoader(loader, deps.Logger)

	switch kongCtx.Command() {
	case "index", "find <mnemonic>":
		records := m.Records
		if records == nil {
			path := settings.DB
			if path == "" {
				path = defaultDBPath()
			}
			m.DB = sqlite.NewDB(path)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set A64DOC_DB to use a different database path\n")
				return fmt.Errorf("failed to open database at %q: %w", path, err)
			}
			defer m.Close()
			records = sqlite.NewRecordService(m.DB)
		}
		deps.Records = a64slog.NewLoggingRecordService(records, deps.Logger)
	case "js":
		if cli.JS.Out != "" {
			deps.Catalog = fs.NewScriptWriter(filepath.Dir(cli.JS.Out), filepath.Base(cli.JS.Out))
		}
	}

	return kongCtx.Run(deps)
}

// defaultDBPath returns the database path used when neither a flag nor the
// config file names one.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "a64doc.db"
	}
	dir := filepath.Join(home, ".a64doc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "a64doc.db")
}
