package multicast

import "fmt"

// InvokeError reports member callback failures during a Notify pass.
type InvokeError struct {
	RegistryID string // Registry that ran the fan-out
	Members    int    // Snapshot size of the pass
	Failed     int    // Callbacks that returned an error
	Err        error  // Underlying error(s), joined under ContinueOnError
}

// Error implements the error interface.
func (e *InvokeError) Error() string {
	return fmt.Sprintf("multicast %s: %d of %d member callbacks failed: %v",
		e.RegistryID, e.Failed, e.Members, e.Err)
}

// Unwrap returns the underlying error.
func (e *InvokeError) Unwrap() error {
	return e.Err
}
