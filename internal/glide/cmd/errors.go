package cmd

// Exit codes for the glide CLI. Installer-subprocess failures propagate the
// subprocess's own exit code instead.
const (
	ExitSuccess           = 0 // Success
	ExitGeneralError      = 1 // General error
	ExitInvalidParameters = 3 // Invalid parameters (unknown client, bad config)
)

// exitCodeError carries a specific exit code for the process to terminate
// with.
type exitCodeError struct {
	code int
	err  error
}

func (e exitCodeError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitCodeError) Unwrap() error {
	return e.err
}

func (e exitCodeError) ExitCode() int {
	return e.code
}

// exitWithCode returns an error that causes the program to exit with the
// given code.
func exitWithCode(code int, err error) error {
	return exitCodeError{code: code, err: err}
}
