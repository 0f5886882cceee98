package errors

import (
	"fmt"
)

// Code represents stable error codes for all failure modes
type Code string

const (
	// GitUnavailable indicates the git binary is missing or not runnable
	GitUnavailable Code = "GIT_UNAVAILABLE"
	// NotARepository indicates the target path is not inside a git repository
	NotARepository Code = "NOT_A_REPOSITORY"
	// BranchNotFound indicates the requested branch could not be resolved
	BranchNotFound Code = "BRANCH_NOT_FOUND"
	// BlameFailed indicates git blame failed for a file
	BlameFailed Code = "BLAME_FAILED"
	// CacheError indicates a blame cache read or write failed
	CacheError Code = "CACHE_ERROR"
	// ConfigInvalid indicates a config file or manifest failed validation
	ConfigInvalid Code = "CONFIG_INVALID"
	// PlotError indicates chart rendering failed
	PlotError Code = "PLOT_ERROR"
	// InternalError indicates unexpected error
	InternalError Code = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
	Safe        bool   `json:"safe,omitempty"`
}

// Error represents a strata error with code, message, and suggestions
type Error struct {
	Code           Code        `json:"code"`
	Message        string      `json:"message"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new Error with the suggested fixes registered for its code
func New(code Code, message string, cause error) *Error {
	return &Error{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: SuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithFix appends an extra suggested fix to the error
func (e *Error) WithFix(fix FixAction) *Error {
	e.SuggestedFixes = append(e.SuggestedFixes, fix)
	return e
}

// fixActions maps error codes to suggested fix actions
var fixActions = map[Code][]FixAction{
	GitUnavailable: {
		{
			Command:     "git --version",
			Safe:        true,
			Description: "Check that git is installed and on PATH",
		},
	},
	NotARepository: {
		{
			Command:     "git rev-parse --show-toplevel",
			Safe:        true,
			Description: "Check that the path is inside a git repository",
		},
	},
	BranchNotFound: {
		{
			Command:     "git branch --list",
			Safe:        true,
			Description: "List branches available in the repository",
		},
	},
	CacheError: {
		{
			Command:     "strata cache clear",
			Safe:        true,
			Description: "Reset the blame cache and re-run the analysis",
		},
	},
}

// SuggestedFixes returns suggested fixes for an error code
func SuggestedFixes(code Code) []FixAction {
	if fixes, ok := fixActions[code]; ok {
		return fixes
	}
	return nil
}
