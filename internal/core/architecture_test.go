package core

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestEngineStaysFreeOfIO keeps the transformation layer independent of the
// dataset, storage and transport adapters that feed it.
func TestEngineStaysFreeOfIO(t *testing.T) {
	forbidden := []string{
		"nuclidex/internal/infra",
		"nuclidex/internal/source",
		"nuclidex/internal/loader",
		"nuclidex/internal/storage",
		"nuclidex/internal/render",
		"database/sql",
		"net/http",
		"os",
	}
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, "nuclidex/internal/core", "nuclidex/pkg/domain")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	var viols []string
	for _, pkg := range pkgs {
		for imp := range pkg.Imports {
			for _, f := range forbidden {
				if imp == f || strings.HasPrefix(imp, f+"/") {
					viols = append(viols, pkg.PkgPath+": "+imp)
				}
			}
		}
	}
	sort.Strings(viols)
	for _, v := range viols {
		t.Errorf("forbidden import: %s", v)
	}
}
