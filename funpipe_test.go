package funpipe_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/funpipe"
	"github.com/funvibe/funpipe/internal/diagnostics"
)

// ---------- RewriteSource ----------

func TestRewriteSource(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3 |> double |> add(1)", "add(double(3), 1)"},
		{"a |> _.name", "a.name"},
		{"a |> _.method(1)", "a.method(1)"},
		{"a |> _ + 3", "(\\Z -> Z + 3)(a)"},
		{"a |> [_, 1]", "(\\Z -> [Z, 1])(a)"},
		{"a |> \"v=${_}\"", "(\\Z -> \"v=${Z}\")(a)"},
		{"a |> f", "f(a)"},
		{"1 + 2", "1 + 2"}, // pipe-free input is untouched
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := funpipe.RewriteSource(tt.input, nil)
			if err != nil {
				t.Fatalf("RewriteSource: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteSource_InsertAtBack(t *testing.T) {
	got, err := funpipe.RewriteSource("a |> f(1)", &funpipe.Config{InsertAtBack: true})
	if err != nil {
		t.Fatalf("RewriteSource: %v", err)
	}
	if got != "f(1, a)" {
		t.Errorf("got %q", got)
	}
}

func TestRewriteSource_CustomTokens(t *testing.T) {
	cfg := &funpipe.Config{Operator: ">>", Placeholder: "it", LambdaVar: "V"}
	got, err := funpipe.RewriteSource("a >> it * 2", cfg)
	if err != nil {
		t.Fatalf("RewriteSource: %v", err)
	}
	if got != "(\\V -> V * 2)(a)" {
		t.Errorf("got %q", got)
	}
}

func TestRewriteSource_ConfigErrors(t *testing.T) {
	if _, err := funpipe.RewriteSource("a |> f", &funpipe.Config{Placeholder: "Z"}); !errors.Is(err, diagnostics.Sentinel(diagnostics.ErrC001)) {
		t.Errorf("expected C001, got %v", err)
	}
	if _, err := funpipe.RewriteSource("a |> f", &funpipe.Config{Operator: "!!"}); !errors.Is(err, diagnostics.Sentinel(diagnostics.ErrC002)) {
		t.Errorf("expected C002, got %v", err)
	}
}

func TestRewriteSource_AmbiguousRewrite(t *testing.T) {
	_, err := funpipe.RewriteSource("a |> 1 + 2", nil)
	if !errors.Is(err, diagnostics.Sentinel(diagnostics.ErrR001)) {
		t.Errorf("expected R001, got %v", err)
	}
}

func TestRewriteSource_ParseError(t *testing.T) {
	if _, err := funpipe.RewriteSource("a |>", nil); err == nil {
		t.Error("expected a parse error")
	}
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe.yaml")
	data := []byte("operator: \">>\"\nplaceholder: it\nlambda_var: V\ninsert: back\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := funpipe.ConfigFromFile(path)
	if err != nil {
		t.Fatalf("ConfigFromFile: %v", err)
	}
	got, err := funpipe.RewriteSource("a >> f(1)", cfg)
	if err != nil {
		t.Fatalf("RewriteSource: %v", err)
	}
	if got != "f(1, a)" {
		t.Errorf("got %q", got)
	}
}

// ---------- Compile and Run ----------

func TestCompileRun_Chain(t *testing.T) {
	prog, err := funpipe.Compile("3 |> double |> add(1)", "chain", nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got, err := prog.Run(map[string]interface{}{
		"double": funpipe.GoFunc(func(args ...interface{}) (interface{}, error) {
			return args[0].(int64) * 2, nil
		}),
		"add": funpipe.GoFunc(func(args ...interface{}) (interface{}, error) {
			return args[0].(int64) + args[1].(int64), nil
		}),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != int64(7) {
		t.Errorf("got %v, want 7", got)
	}
}

func TestCompileRun_RecordAccess(t *testing.T) {
	prog, err := funpipe.Compile("user |> _.name", "record", nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	got, err := prog.Run(map[string]interface{}{
		"user": map[string]interface{}{"name": "ada"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != "ada" {
		t.Errorf("got %v", got)
	}
}

func TestCompileRun_ReuseAcrossBindings(t *testing.T) {
	prog, err := funpipe.Compile("x |> _ * 2", "reuse", nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for i, want := range map[int64]int64{3: 6, 10: 20} {
		got, err := prog.Run(map[string]interface{}{"x": i})
		if err != nil {
			t.Fatalf("Run(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("Run(%d): got %v, want %v", i, got, want)
		}
	}
}

func TestCompile_ErrorNamesUnit(t *testing.T) {
	_, err := funpipe.Compile("a |>", "broken-unit", nil)
	if err == nil {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(err.Error(), "broken-unit") {
		t.Errorf("error should name the unit: %v", err)
	}
}

func TestCompile_IdsDiffer(t *testing.T) {
	a, err := funpipe.Compile("1 + 1", "a", nil)
	if err != nil {
		t.Fatalf("Compile a: %v", err)
	}
	b, err := funpipe.Compile("1 + 1", "b", nil)
	if err != nil {
		t.Fatalf("Compile b: %v", err)
	}
	if a.CompileID() == "" || a.CompileID() == b.CompileID() {
		t.Errorf("compile ids should be unique and non-empty: %q %q", a.CompileID(), b.CompileID())
	}
	if a.Unit() != "a" {
		t.Errorf("unit: got %q", a.Unit())
	}
}

func TestRun_UnboundIdentifier(t *testing.T) {
	prog, err := funpipe.Compile("missing |> f", "unbound", nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := prog.Run(nil); err == nil {
		t.Error("expected a run error for unbound identifiers")
	}
}

func TestRun_BindingError(t *testing.T) {
	prog, err := funpipe.Compile("x", "bind", nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := prog.Run(map[string]interface{}{"x": struct{}{}}); err == nil {
		t.Error("expected an error for an unsupported binding type")
	}
}

// ---------- debug observer ----------

func TestDebug_ObserverSeesEveryStageInOrder(t *testing.T) {
	prog, err := funpipe.Compile("1 |> _ + 1 |> double |> _ * 10", "debug", &funpipe.Config{Debug: true})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	var seen []string
	prog.SetObserver(func(value string) { seen = append(seen, value) })
	got, err := prog.Run(map[string]interface{}{
		"double": funpipe.GoFunc(func(args ...interface{}) (interface{}, error) {
			return args[0].(int64) * 2, nil
		}),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != int64(40) {
		t.Fatalf("got %v, want 40", got)
	}
	want := []string{"2", "4", "40"}
	if len(seen) != len(want) {
		t.Fatalf("observer calls: got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("stage %d: got %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestDebug_NoTapsWithoutDebug(t *testing.T) {
	prog, err := funpipe.Compile("1 |> _ + 1", "quiet", nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	called := false
	prog.SetObserver(func(string) { called = true })
	if _, err := prog.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if called {
		t.Error("observer fired without debug mode")
	}
}

func TestProgram_SourcePrintsRewrittenForm(t *testing.T) {
	prog, err := funpipe.Compile("3 |> double", "src", nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if prog.Source() != "double(3)" {
		t.Errorf("Source: got %q", prog.Source())
	}
}
