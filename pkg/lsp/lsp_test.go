package lsp

import (
	"os"
	"testing"

	"src.crush.sh/pkg/prog"
	. "src.crush.sh/pkg/prog/progtest"
)

func TestProgram_NotSuitable(t *testing.T) {
	if err := (Program{}).Run([3]*os.File{}, &prog.Flags{}, nil); err != prog.ErrNotSuitable {
		t.Errorf("Run without -lsp -> %v, want ErrNotSuitable", err)
	}
}

func TestProgram_ExitsOnEOF(t *testing.T) {
	Test(t, Program{},
		ThatCrush("-lsp").DoesNothing(),
	)
}
