// Package mods collects the builtin namespaces.
package mods

import (
	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/mods/constants"
	"src.crush.sh/pkg/mods/core"
	"src.crush.sh/pkg/mods/streams"
)

// AddTo declares all the builtin namespaces in the root scope, and makes the
// root scope use them.
func AddTo(root *eval.Scope) error {
	for _, add := range []func(*eval.Scope) error{
		constants.AddTo, core.AddTo, streams.AddTo,
	} {
		if err := add(root); err != nil {
			return err
		}
	}
	return nil
}
