// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"reflect"
	"testing"

	"src.crush.sh/pkg/store/storedefs"
)

var (
	cmds     = []string{"echo foo", "echo bar", "stream/seq 3 | sum", "echo baz"}
	cmdsSeqs = []int{1, 2, 3, 4}
)

// TestCmd tests the command history functionality of a Store, which must be
// empty.
func TestCmd(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, nil", startSeq, err, 1)
	}

	// AddCmd
	for i, cmd := range cmds {
		seq, err := store.AddCmd(cmd)
		if seq != cmdsSeqs[i] || err != nil {
			t.Errorf("store.AddCmd(%q) -> %v, %v, want %v, nil",
				cmd, seq, err, cmdsSeqs[i])
		}
	}

	endSeq, err := store.NextCmdSeq()
	wantEndSeq := startSeq + len(cmds)
	if endSeq != wantEndSeq || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want %v, nil",
			endSeq, err, wantEndSeq)
	}

	// Cmd
	for i, wantCmd := range cmds {
		cmd, err := store.Cmd(cmdsSeqs[i])
		if cmd != wantCmd || err != nil {
			t.Errorf("store.Cmd(%v) -> %v, %v, want %v, nil",
				cmdsSeqs[i], cmd, err, wantCmd)
		}
	}
	if _, err := store.Cmd(100); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(100) -> %v, want ErrNoMatchingCmd", err)
	}

	// Cmds
	got, err := store.Cmds(2, 4)
	want := []storedefs.Cmd{{Text: "echo bar", Seq: 2}, {Text: "stream/seq 3 | sum", Seq: 3}}
	if !reflect.DeepEqual(got, want) || err != nil {
		t.Errorf("store.Cmds(2, 4) -> %v, %v, want %v, nil", got, err, want)
	}

	// PrevCmd
	prevCmdTests := []struct {
		upto    int
		prefix  string
		wantCmd storedefs.Cmd
		wantErr error
	}{
		{5, "echo", storedefs.Cmd{Text: "echo baz", Seq: 4}, nil},
		{4, "echo", storedefs.Cmd{Text: "echo bar", Seq: 2}, nil},
		{100, "stream", storedefs.Cmd{Text: "stream/seq 3 | sum", Seq: 3}, nil},
		{2, "echo b", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
		{1, "", storedefs.Cmd{}, storedefs.ErrNoMatchingCmd},
	}
	for _, tc := range prevCmdTests {
		cmd, err := store.PrevCmd(tc.upto, tc.prefix)
		if cmd != tc.wantCmd || err != tc.wantErr {
			t.Errorf("store.PrevCmd(%v, %q) -> (%v, %v), want (%v, %v)",
				tc.upto, tc.prefix, cmd, err, tc.wantCmd, tc.wantErr)
		}
	}

	// DelCmd
	if err := store.DelCmd(1); err != nil {
		t.Errorf("store.DelCmd(1) -> %v", err)
	}
	if cmd, err := store.Cmd(1); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(1) after deletion -> %v, %v, want ErrNoMatchingCmd", cmd, err)
	}
	if seq, _ := store.NextCmdSeq(); seq != wantEndSeq {
		t.Errorf("deletion changed NextCmdSeq to %v", seq)
	}
}
