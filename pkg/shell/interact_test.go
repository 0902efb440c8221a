package shell

import (
	"testing"

	. "src.crush.sh/pkg/prog/progtest"
)

func TestInteract(t *testing.T) {
	setupCleanHome(t)

	Test(t, &Program{},
		ThatCrush().WithStdin("echo hello\n").WritesStdout("hello\n"),
		ThatCrush().WithStdin("let x=2\necho $x\n").WritesStdout("2\n"),
		// The last line does not need a newline.
		ThatCrush().WithStdin("echo a\necho b").WritesStdout("a\nb\n"),
		// Errors do not end the session.
		ThatCrush().
			WithStdin("nope\necho after\n").
			WritesStdout("after\n").
			WritesStderrContaining("unknown command"),
		ThatCrush().
			WithStdin("echo [\necho after\n").
			WritesStdout("after\n").
			WritesStderrContaining("Parse error"),
		// A closure may span several lines.
		ThatCrush().
			WithStdin("let f=`{\n  echo in closure\n}\nf\n").
			WritesStdout("[in closure]\n"),
	)
}

func TestIncomplete(t *testing.T) {
	for _, code := range []string{"echo `{", "echo `{ echo a\n", "echo {"} {
		if !incomplete(code) {
			t.Errorf("incomplete(%q) = false, want true", code)
		}
	}
	for _, code := range []string{"", "echo a\n", "echo `{ echo a }", "echo ]"} {
		if incomplete(code) {
			t.Errorf("incomplete(%q) = true, want false", code)
		}
	}
}
