package app

import "fmt"

// Terminal status identifiers reported by the execution service.
const (
	StatusInQueue          = 1
	StatusProcessing       = 2
	StatusAccepted         = 3
	StatusWrongAnswer      = 4
	StatusTimeLimit        = 5
	StatusCompilationError = 6
	StatusInternalError    = 13
	StatusExecFormatError  = 14
)

var statusDescriptions = map[int]string{
	StatusInQueue:          "In Queue",
	StatusProcessing:       "Processing",
	StatusAccepted:         "Accepted",
	StatusWrongAnswer:      "Wrong Answer",
	StatusTimeLimit:        "Time Limit Exceeded",
	StatusCompilationError: "Compilation Error",
	7:                      "Runtime Error (SIGSEGV)",
	8:                      "Runtime Error (SIGXFSZ)",
	9:                      "Runtime Error (SIGFPE)",
	10:                     "Runtime Error (SIGABRT)",
	11:                     "Runtime Error (NZEC)",
	12:                     "Runtime Error (Other)",
	StatusInternalError:    "Internal Error",
	StatusExecFormatError:  "Exec Format Error",
}

// DescribeStatus returns the human-readable description for a status id.
func DescribeStatus(id int) string {
	if d, ok := statusDescriptions[id]; ok {
		return d
	}
	return fmt.Sprintf("Unknown (%d)", id)
}

// SubmissionRequest is the payload handed to the execution service. Free-form
// text fields are expected to be codec-encoded before transport.
type SubmissionRequest struct {
	SourceCode      string
	Stdin           string
	LanguageID      int
	CompilerOptions string
	CLIArguments    string
}

// SubmissionResult is the terminal outcome of one submission. Stdout and
// CompileOutput arrive codec-encoded; Time and Memory are nil when the
// service did not report them.
type SubmissionResult struct {
	StatusID          int
	StatusDescription string
	Stdout            string
	CompileOutput     string
	Time              *string
	Memory            *int
}

// Description prefers the remote-reported description and falls back to the
// local status table.
func (r SubmissionResult) Description() string {
	if r.StatusDescription != "" {
		return r.StatusDescription
	}
	return DescribeStatus(r.StatusID)
}
