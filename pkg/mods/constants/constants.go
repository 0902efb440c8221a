// Package constants declares the constants namespace.
package constants

import (
	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/vals"
)

// AddTo declares the constants namespace in root. The root scope uses it, so
// $true, $false and $global resolve unqualified everywhere.
func AddTo(root *eval.Scope) error {
	_, err := eval.BuildNs("constants").
		AddValues(map[string]vals.Value{
			"true":   vals.Bool(true),
			"false":  vals.Bool(false),
			"global": root,
		}).
		Into(root, true)
	return err
}
