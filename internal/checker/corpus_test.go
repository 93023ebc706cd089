package checker

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/sigil-lang/sigil/internal/config"
	"github.com/sigil-lang/sigil/internal/lexer"
	"github.com/sigil-lang/sigil/internal/parser"
	"github.com/sigil-lang/sigil/internal/pipeline"
)

// TestCorpus checks whole programs against golden diagnostics. Each
// testdata archive holds one source file plus an expected listing of
// the pipeline's sorted output; an empty listing means the program
// must check clean. Archives named strict_* run with no_implicit_any
// enabled.
func TestCorpus(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("no corpus archives under testdata")
	}

	for _, path := range archives {
		name := strings.TrimSuffix(filepath.Base(path), ".txt")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}
			var srcName, source, expected string
			for _, f := range ar.Files {
				if f.Name == "expected" {
					expected = string(f.Data)
					continue
				}
				if srcName != "" {
					t.Fatalf("archive %s has more than one source file", path)
				}
				srcName = f.Name
				source = string(f.Data)
			}
			if srcName == "" {
				t.Fatalf("archive %s has no source file", path)
			}

			cfg := config.Default()
			if strings.HasPrefix(name, "strict_") {
				cfg.Check.NoImplicitAny = true
			}

			ctx := pipeline.NewContext(srcName, source, cfg)
			ctx = (&lexer.LexerProcessor{}).Process(ctx)
			ctx = (&parser.ParserProcessor{}).Process(ctx)
			ctx = (&CheckerProcessor{}).Process(ctx)

			var got []string
			for _, e := range ctx.SortedErrors() {
				got = append(got, e.Format())
			}
			want := nonEmptyLines(expected)

			if strings.Join(got, "\n") != strings.Join(want, "\n") {
				t.Errorf("diagnostics mismatch\ngot:\n%s\nwant:\n%s",
					strings.Join(got, "\n"), strings.Join(want, "\n"))
			}
		})
	}
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
