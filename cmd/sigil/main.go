package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/sigil-lang/sigil/internal/checker"
	"github.com/sigil-lang/sigil/internal/config"
	"github.com/sigil-lang/sigil/internal/declcache"
	"github.com/sigil-lang/sigil/internal/declgen"
	"github.com/sigil-lang/sigil/internal/diagnostics"
	"github.com/sigil-lang/sigil/internal/lexer"
	"github.com/sigil-lang/sigil/internal/parser"
	"github.com/sigil-lang/sigil/internal/pipeline"
)

const usage = `Usage: sigil [command] [flags] <file|dir>...

Commands:
  check    Type-check source files (default)
  emit     Type-check and write .d.sg declaration files
  help     Show this help

Flags:
  --config <path>   Use this sigil.yaml instead of searching upward
  --verbose         Print pipeline stages as they run

With no file arguments, source is read from stdin. Diagnostics go to
stderr; the exit code is 1 when any are reported.
`

// isSourceFile checks if a file has a recognized source extension.
// Emitted .d.sg files are not re-checked.
func isSourceFile(path string) bool {
	if strings.HasSuffix(path, config.DeclFileExt) {
		return false
	}
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}
	if os.Args[1] != "-help" && os.Args[1] != "--help" && os.Args[1] != "help" {
		return false
	}
	fmt.Print(usage)
	return true
}

// collectSourceFiles expands directory arguments into the source
// files they contain, one level deep.
func collectSourceFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", path, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && isSourceFile(entry.Name()) {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}
	return files, nil
}

// loadConfig loads the explicit config file when one was given and
// otherwise searches upward from dir. A missing explicit file is an
// error; a missing discovered one falls back to defaults.
func loadConfig(dir, explicit string) *config.Config {
	path := explicit
	if path == "" {
		found, err := config.FindConfig(dir)
		if err != nil || found == "" {
			return config.Default()
		}
		path = found
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// useColor reports whether diagnostics on f should be colored,
// honoring the NO_COLOR convention (https://no-color.org/).
func useColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

func renderDiagnostic(err *diagnostics.DiagnosticError, colored bool) string {
	if !colored {
		return err.Format()
	}
	file := err.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s(%d,%d): %serror %s%s: %s",
		file, err.Token.Line, err.Token.Column, colorRed, err.Code, colorReset, err.Message)
}

// reportDiagnostics prints the run's diagnostics and reports whether
// the file is clean. Codes listed under check.suppress in sigil.yaml
// are skipped.
func reportDiagnostics(ctx *pipeline.PipelineContext, cfg *config.Config) bool {
	colored := useColor(os.Stderr)
	clean := true
	for _, err := range ctx.SortedErrors() {
		if cfg.Check.Suppressed(string(err.Code)) {
			continue
		}
		clean = false
		fmt.Fprintln(os.Stderr, renderDiagnostic(err, colored))
	}
	return clean
}

func runPipeline(filePath, source string, cfg *config.Config, emit, verbose bool) *pipeline.PipelineContext {
	ctx := pipeline.NewContext(filePath, source, cfg)

	processors := []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&checker.CheckerProcessor{},
	}
	if emit {
		processors = append(processors, &declgen.DeclProcessor{})
	}

	p := pipeline.New(processors...)
	if verbose {
		p.OnStage(func(stage string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", stage, filePath)
		})
	}
	return p.Run(ctx)
}

// emitter writes declaration files and keeps the optional sqlite
// cache behind them. A nil cache means every emission is recomputed.
type emitter struct {
	cache *declcache.Cache
}

func newEmitter(cfg *config.Config) *emitter {
	em := &emitter{}
	if cfg.Declarations.Cache.Enabled {
		cache, err := declcache.Open(cfg.Declarations.Cache.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
		} else {
			em.cache = cache
		}
	}
	return em
}

func (em *emitter) close() {
	if em.cache != nil {
		em.cache.Close()
	}
}

// cached returns stored declaration text for a source, if present.
func (em *emitter) cached(source string) (string, bool) {
	if em.cache == nil {
		return "", false
	}
	text, ok, err := em.cache.Get(declcache.Key(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
		return "", false
	}
	return text, ok
}

func (em *emitter) store(path, source, sessionID, text string) {
	if em.cache == nil {
		return
	}
	if err := em.cache.Put(declcache.Key(source), path, sessionID, text); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
	}
}

func declPathFor(path string) string {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext) + config.DeclFileExt
		}
	}
	return path + config.DeclFileExt
}

func writeDeclFile(sourcePath, text string) bool {
	out := declPathFor(sourcePath)
	if err := os.WriteFile(out, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %s\n", out, err)
		return false
	}
	fmt.Printf("Emitted %s -> %s\n", sourcePath, out)
	return true
}

// processFile checks one file and, in emit mode, writes its
// declaration file. Returns false when the file has diagnostics or an
// IO step failed. Emission is skipped for files with diagnostics.
func processFile(path string, cfg *config.Config, em *emitter, verbose bool) bool {
	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %s\n", path, err)
		return false
	}
	source := string(sourceBytes)

	if em != nil {
		if text, ok := em.cached(source); ok {
			return writeDeclFile(path, text)
		}
	}

	ctx := runPipeline(path, source, cfg, em != nil, verbose)
	ok := reportDiagnostics(ctx, cfg)
	if em != nil && ok && ctx.AstRoot != nil {
		if !writeDeclFile(path, ctx.Declarations) {
			return false
		}
		em.store(path, source, ctx.SessionID, ctx.Declarations)
	}
	return ok
}

func readStdin() (string, error) {
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("Usage: %s [command] <file> or pipe from stdin", os.Args[0])
	}
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("Error reading input: %w", err)
	}
	return string(input), nil
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if handleHelp() {
		return
	}

	args := os.Args[1:]
	cmd := "check"
	if len(args) > 0 && (args[0] == "check" || args[0] == "emit") {
		cmd = args[0]
		args = args[1:]
	}

	verbose := false
	configPath := ""
	var paths []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-verbose" || arg == "--verbose":
			verbose = true
		case arg == "-config" || arg == "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "Flag %s needs a path\n%s", arg, usage)
				os.Exit(1)
			}
			i++
			configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(os.Stderr, "Unknown flag: %s\n%s", arg, usage)
			os.Exit(1)
		default:
			paths = append(paths, arg)
		}
	}

	// Stdin mode: no file arguments.
	if len(paths) == 0 {
		source, err := readStdin()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		cfg := loadConfig(".", configPath)
		emitMode := cmd == "emit" || cfg.Declarations.Emit
		ctx := runPipeline("<stdin>", source, cfg, emitMode, verbose)
		ok := reportDiagnostics(ctx, cfg)
		if emitMode && ok {
			fmt.Print(ctx.Declarations)
		}
		if !ok {
			os.Exit(1)
		}
		return
	}

	files, err := collectSourceFiles(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No source files found")
		os.Exit(1)
	}

	cfg := loadConfig(filepath.Dir(files[0]), configPath)
	emitMode := cmd == "emit" || cfg.Declarations.Emit

	var em *emitter
	if emitMode {
		em = newEmitter(cfg)
	}

	failed := false
	for _, file := range files {
		if !processFile(file, cfg, em, verbose) {
			failed = true
		}
	}
	// os.Exit skips deferred calls, so close the cache by hand.
	if em != nil {
		em.close()
	}
	if failed {
		os.Exit(1)
	}
}
