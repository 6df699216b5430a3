package loader

import (
	"testing"

	"nuclidex/testutil"
)

func TestLoaderUsesSourceAbstraction(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InfraImportForbidden, "loader reads through internal/source")
}
