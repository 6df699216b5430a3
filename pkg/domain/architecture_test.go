package domain

import (
	"testing"

	"nuclidex/testutil"
)

// TestDomainDoesNotImportInternal keeps the record and descriptor types free of
// any implementation package.
func TestDomainDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "domain must stay implementation-free")
}
