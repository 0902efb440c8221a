package streams_test

import (
	"testing"

	"src.crush.sh/pkg/eval/errs"
	. "src.crush.sh/pkg/eval/evaltest"
)

func TestSeq(t *testing.T) {
	Test(t,
		That("stream/seq 3").Puts(Rows(seqTypes, []any{0}, []any{1}, []any{2})),
		That("seq 2 4").Puts(Rows(seqTypes, []any{2}, []any{3})),
		That("seq 4 2").Puts(Rows(seqTypes)),

		That("seq").Throws(errs.ArityMismatch{
			What: "arguments", ValidLow: 1, ValidHigh: 2, Actual: 0}),
		That("seq x").Throws(errs.BadValue{
			What: "argument 1", Valid: "integer", Actual: "x"}),
		That("seq 100000000000000000000").Throws(errs.BadValue{
			What: "argument 1", Valid: "a 64-bit integer", Actual: "100000000000000000000"}),
	)
}
