package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPredicates(t *testing.T) {
	cases := []struct {
		in       string
		internal bool
		infra    bool
	}{
		{"nuclidex/internal/core", true, false},
		{"nuclidex/internal/infra/source/s3", true, true},
		{"nuclidex/internal/infra", true, true},
		{"nuclidex/pkg/domain", false, false},
		{"github.com/charmbracelet/lipgloss", false, false},
	}
	for _, c := range cases {
		if got := InternalImportForbidden(c.in); got != c.internal {
			t.Fatalf("InternalImportForbidden(%q)=%v want %v", c.in, got, c.internal)
		}
		if got := InfraImportForbidden(c.in); got != c.infra {
			t.Fatalf("InfraImportForbidden(%q)=%v want %v", c.in, got, c.infra)
		}
	}
	either := AnyOf(InfraImportForbidden, func(p string) bool { return p == "os" })
	if !either("os") || !either("x/internal/infra/y") || either("fmt") {
		t.Fatalf("AnyOf combined predicates incorrectly")
	}
}

func writePkg(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func TestDirectImportViolations(t *testing.T) {
	dir := writePkg(t, map[string]string{
		"a.go":      "package tmp\nimport (\n\t\"fmt\"\n\t\"nuclidex/internal/infra/source/fs\"\n)\nvar _ = fmt.Sprint\nvar _ = fs.New\n",
		"b.go":      "package tmp\nimport \"nuclidex/internal/source\"\nvar _ source.Store\n",
		"a_test.go": "package tmp\nimport \"nuclidex/internal/infra/source/memory\"\n",
	})
	viols, err := directImportViolations(dir, InfraImportForbidden)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || !strings.Contains(viols[0], "a.go") {
		t.Fatalf("expected one violation in a.go, got %v", viols)
	}
	AssertNoDirectImports(t, dir, func(string) bool { return false }, "none")
}

func TestDirectImportViolationsErrors(t *testing.T) {
	if _, err := directImportViolations(filepath.Join(t.TempDir(), "missing"), InfraImportForbidden); err == nil {
		t.Fatalf("expected read dir error")
	}
	dir := writePkg(t, map[string]string{"bad.go": "package tmp\nimport (\n"})
	if _, err := directImportViolations(dir, InfraImportForbidden); err == nil {
		t.Fatalf("expected parse error")
	}
}

type recordingFatal struct{ msg string }

func (r *recordingFatal) Fatalf(format string, args ...any) { r.msg = fmt.Sprintf(format, args...) }

func TestFailIfDirectViolations(t *testing.T) {
	var rec recordingFatal
	failIfDirectViolations(&rec, "reason", nil)
	if rec.msg != "" {
		t.Fatalf("expected no failure")
	}
	failIfDirectViolations(&rec, "drivers", []string{"x (in a.go)"})
	if !strings.Contains(rec.msg, "drivers") || !strings.Contains(rec.msg, "x (in a.go)") {
		t.Fatalf("unexpected message %q", rec.msg)
	}
}
