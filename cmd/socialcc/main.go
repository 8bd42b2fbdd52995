package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess       = 0 // Every stage completed
	ExitPartialResult = 1 // The run finished but some dialogues were aborted
	ExitError         = 2 // Configuration or runtime error
)

// PartialRunError indicates that the stages completed, but one or more
// dialogues were cut short by a failed chat call.
type PartialRunError struct {
	Failed int
	Total  int
}

func (e *PartialRunError) Error() string {
	return fmt.Sprintf("%d of %d dialogues were aborted; see the log for the failing turns", e.Failed, e.Total)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var partial *PartialRunError
		if errors.As(err, &partial) {
			os.Exit(ExitPartialResult)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
