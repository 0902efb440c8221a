// Package shell is the entry point for the terminal interface of crush.
package shell

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"src.crush.sh/pkg/config"
	"src.crush.sh/pkg/eval"
	"src.crush.sh/pkg/logutil"
	"src.crush.sh/pkg/mods"
	"src.crush.sh/pkg/mods/history"
	"src.crush.sh/pkg/prog"
	"src.crush.sh/pkg/store"
	"src.crush.sh/pkg/sys"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It always runs.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	if f.Log == "" && cfg.Log != "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}
	cleanup := initSignal(fds[2])
	defer cleanup()

	if f.CodeInArg && len(args) == 0 {
		return prog.BadUsage("-c requires an argument")
	}
	if len(args) > 0 {
		ev, err := InitEvaler(cfg)
		if err != nil {
			return err
		}
		exit := script(ev, fds, args, &scriptCfg{
			Cmd: f.CodeInArg, CompileOnly: f.CompileOnly, JSON: f.JSON})
		return prog.Exit(exit)
	}
	if f.CompileOnly {
		return prog.BadUsage("-compileonly requires a script")
	}

	ev, err := InitEvaler(cfg)
	if err != nil {
		return err
	}
	icfg := &InteractConfig{Evaler: ev, Prompt: cfg.Prompt}
	if cfg.History {
		if s := openStore(fds, f, cfg); s != nil {
			defer s.Close()
			if err := history.AddTo(ev.Root, s); err != nil {
				return err
			}
			icfg.Store = s
		}
	}
	Interact(fds, icfg)
	return nil
}

func loadConfig(f *prog.Flags) (*config.Config, error) {
	path := f.Config
	if path == "" {
		p, err := config.Path()
		if err != nil {
			logger.Println("no default config path:", err)
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}

// InitEvaler creates an Evaler with all the builtin namespaces, configured by
// cfg.
func InitEvaler(cfg *config.Config) (*eval.Evaler, error) {
	ev := eval.NewEvaler()
	ev.BufferSize = cfg.ChannelBufferSize
	if err := mods.AddTo(ev.Root); err != nil {
		return nil, err
	}
	return ev, nil
}

// Opens the history database. Failures are reported as warnings, since the
// shell works without history.
func openStore(fds [3]*os.File, f *prog.Flags, cfg *config.Config) *store.DBStore {
	path := f.DB
	if path == "" {
		path = cfg.DB
	}
	if path == "" {
		p, err := config.DBPath()
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			return nil
		}
		path = p
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			return nil
		}
	}
	s, err := store.Open(path)
	if err != nil {
		fmt.Fprintln(fds[2], "Warning: cannot open history:", err)
		return nil
	}
	return s
}

func initSignal(stderr *os.File) func() {
	sigCh := sys.NotifySignals()
	go func() {
		for sig := range sigCh {
			if ignoreSignal(sig) {
				continue
			}
			logger.Println("signal", signalName(sig))
			handleSignal(sig, stderr)
		}
	}()
	return func() { signal.Stop(sigCh) }
}
