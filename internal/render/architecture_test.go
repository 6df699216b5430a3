package render

import (
	"testing"

	"nuclidex/testutil"
)

func TestRenderDoesNotReachDrivers(t *testing.T) {
	forbidden := testutil.AnyOf(
		testutil.InfraImportForbidden,
		func(p string) bool { return p == "database/sql" || p == "nuclidex/internal/storage" },
	)
	testutil.AssertNoDirectImports(t, ".", forbidden, "render consumes core.Service output only")
}
