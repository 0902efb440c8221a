package shell

import (
	"testing"

	. "src.crush.sh/pkg/prog/progtest"
	"src.crush.sh/pkg/testutil"
)

func TestScript(t *testing.T) {
	setupCleanHome(t)
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"hello.crush":        "echo hello",
		"jobs.crush":         "let x=1\necho $x\nnope\necho after",
		"invalid-utf8.crush": "\xff",
	})

	Test(t, &Program{},
		ThatCrush("hello.crush").WritesStdout("hello\n"),
		ThatCrush("-c", "echo hello").WritesStdout("hello\n"),
		ThatCrush("-c", "seq 3").WritesStdout("value\n0\n1\n2\n"),
		ThatCrush("-c", "seq 5 | sum").WritesStdout("10\n"),
		ThatCrush("-c", "echo a b").WritesStdout("[a b]\n"),
		ThatCrush("-c", "let x=1").DoesNothing(),

		ThatCrush("invalid-utf8.crush").
			ExitsWith(2).
			WritesStderrContaining("cannot read script"),
		ThatCrush("non-existent.crush").
			ExitsWith(2).
			WritesStderrContaining("cannot read script"),

		// Parse errors stop everything.
		ThatCrush("-c", "echo a; echo [").
			ExitsWith(2).
			WritesStderrContaining("Parse error"),
		// Other errors are printed, and later jobs still run.
		ThatCrush("jobs.crush").
			ExitsWith(1).
			WritesStdout("1\nafter\n").
			WritesStderrContaining("Construction error"),
		ThatCrush("-c", "seq 3 | sum %nope").
			ExitsWith(1).
			WritesStderrContaining("Runtime error"),
	)
}

func TestScript_CompileOnly(t *testing.T) {
	setupCleanHome(t)

	Test(t, &Program{},
		ThatCrush("-compileonly", "-c", "echo [").
			ExitsWith(2).
			WritesStderrContaining("Parse error"),
		ThatCrush("-compileonly", "-json", "-c", "echo [").
			ExitsWith(2).
			WritesStdoutContaining(`[{"fileName":"code from -c","start":6,`),
		ThatCrush("-compileonly", "-json", "-c", "echo a").
			WritesStdout("[]\n"),
		// Names are not resolved.
		ThatCrush("-compileonly", "-c", "nope").DoesNothing(),
	)
}
