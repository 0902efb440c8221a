package sys

import (
	"os"
	"os/signal"
)

func notifySignals() chan os.Signal {
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(sigCh, os.Interrupt)
	return sigCh
}
