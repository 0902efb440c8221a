package eval_test

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"src.crush.sh/pkg/eval"
)

func TestPrinter_LinesAreNotInterleaved(t *testing.T) {
	var buf bytes.Buffer
	p, cleanup := eval.NewPrinter(&buf)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				p.Line(fmt.Sprintf("line %d.%d", i, j))
			}
		}(i)
	}
	wg.Wait()
	cleanup()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 100 {
		t.Fatalf("got %d lines, want 100", len(lines))
	}
	sort.Strings(lines)
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			if want := fmt.Sprintf("line %d.%d", i, j); lines[i*10+j] != want {
				t.Errorf("line %d is %q, want %q", i*10+j, lines[i*10+j], want)
			}
		}
	}
}

func TestPrinter_Error(t *testing.T) {
	var buf bytes.Buffer
	p, cleanup := eval.NewPrinter(&buf)
	p.Error(errors.New("bad thing"))
	cleanup()
	if !strings.Contains(buf.String(), "bad thing") {
		t.Errorf("got %q, want it to contain the error", buf.String())
	}
}

func TestPrinter_DiscardsAfterCleanup(t *testing.T) {
	var buf bytes.Buffer
	p, cleanup := eval.NewPrinter(&buf)
	cleanup()
	p.Line("late")
	if buf.Len() != 0 {
		t.Errorf("got %q after cleanup, want nothing", buf.String())
	}
}

func TestPrinter_Nil(t *testing.T) {
	var p *eval.Printer
	p.Line("x")
	p.Error(errors.New("x"))
}
