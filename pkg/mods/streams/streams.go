// Package streams declares the stream namespace, which holds the commands that
// read and transform row streams.
package streams

import (
	"errors"

	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/eval/errs"
	"src.crush.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[mods/stream] ")

// AddTo declares the stream namespace in root.
func AddTo(root *eval.Scope) error {
	_, err := eval.BuildNs("stream").
		AddFns(map[string]func(*eval.ExecutionContext) error{
			"uniq":  uniq,
			"sum":   sum,
			"where": where,
			"seq":   seq,
		}).
		Into(root, true)
	return err
}

// Reports an error from sending a row without stopping the caller. A reader
// that has gone away is not a problem worth printing.
func reportSendError(ctx *eval.ExecutionContext, err error) {
	if errors.Is(err, errs.ReaderGone{}) {
		logger.Println("send:", err)
		return
	}
	ctx.Printer.Error(err)
}
