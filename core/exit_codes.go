package core

import (
	"os"
	"syscall"
)

// Exit codes for the resumidor binary.
// Signal-based exits follow the Unix 128 + signal number convention.
const (
	ExitCodeSuccess = 0

	// ExitCodeError covers runtime failures such as an unreadable PDF.
	ExitCodeError = 1

	// ExitCodeConfig indicates an invalid environment or .env file.
	ExitCodeConfig = 2

	// ExitCodeSIGINT is 128 + 2.
	ExitCodeSIGINT = 130

	// ExitCodeSIGTERM is 128 + 15.
	ExitCodeSIGTERM = 143
)

// ExitCodeName returns a human-readable name for an exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitCodeSuccess:
		return "success"
	case ExitCodeError:
		return "error"
	case ExitCodeConfig:
		return "configuration error"
	case ExitCodeSIGINT:
		return "interrupted (SIGINT)"
	case ExitCodeSIGTERM:
		return "terminated (SIGTERM)"
	default:
		return "unknown"
	}
}

// ExitCodeForSignal maps the signal that stopped the server to its exit code.
// A nil signal means the server stopped on its own.
func ExitCodeForSignal(sig os.Signal) int {
	switch sig {
	case nil:
		return ExitCodeSuccess
	case syscall.SIGINT:
		return ExitCodeSIGINT
	case syscall.SIGTERM:
		return ExitCodeSIGTERM
	default:
		return ExitCodeError
	}
}

// ExitCodeForError picks ExitCodeConfig for configuration problems and
// ExitCodeError for everything else.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	if _, ok := IsConfigError(err); ok {
		return ExitCodeConfig
	}
	return ExitCodeError
}

// IsSignalExit reports whether the exit code indicates a signal-based termination.
func IsSignalExit(code int) bool {
	return code == ExitCodeSIGINT || code == ExitCodeSIGTERM
}
