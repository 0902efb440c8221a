package store

import (
	"path/filepath"

	"src.crush.sh/pkg/testutil"
)

// MustTempStore returns a DBStore backed by a file in a temporary directory.
// The store is closed when the test finishes.
func MustTempStore(c testutil.Cleanuper) *DBStore {
	st, err := Open(filepath.Join(testutil.TempDir(c), "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
