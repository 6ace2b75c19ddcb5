package common

import (
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// PanicHandler is installed with defer at the top of worker goroutines. Contract
// violations (bad row index, mismatched type parameter reaching a state machine)
// panic, and continuing past one would silently produce wrong query results, so we
// log and abort the process.
func PanicHandler() {
	r := recover()
	if r == nil {
		return // no panic underway
	}

	log.Errorf("Panic occurred in execution core %v", r)
	debug.PrintStack()

	os.Exit(1)
}
