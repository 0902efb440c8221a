package testutil

import "os"

// MustMkdirAll calls os.MkdirAll and panics if an error is returned.
func MustMkdirAll(names ...string) {
	for _, name := range names {
		err := os.MkdirAll(name, 0700)
		if err != nil {
			panic(err)
		}
	}
}

// MustWriteFile calls os.WriteFile and panics if an error occurs.
func MustWriteFile(filename string, data []byte, perm os.FileMode) {
	err := os.WriteFile(filename, data, perm)
	if err != nil {
		panic(err)
	}
}
