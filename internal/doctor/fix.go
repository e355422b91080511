package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/toolkitlog/internal/errors"
)

// Fixer is an optional interface that checks can implement to support auto-remediation.
// Checks that implement Fixer can fix issues they detect when the --fix flag is used.
type Fixer interface {
	// CanFix returns true if this check has fixable issues.
	// Must be called after Run() to check if there are issues that can be fixed.
	CanFix() bool

	// Fix attempts to remediate the issues found by Run().
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix operation.
type FixResult struct {
	// Path is the file or directory that was targeted for fixing.
	Path string `json:"path"`

	// Fixed indicates whether the fix was successfully applied.
	Fixed bool `json:"fixed"`

	// Description explains what was fixed or why it couldn't be fixed.
	Description string `json:"description"`

	// Error contains the error if the fix failed.
	Error error `json:"-"`
}

// secureFilePerm matches the mode FileSink creates log files with.
const secureFilePerm os.FileMode = 0o600

// secureDirPerm matches the mode FileSink creates log directories with.
const secureDirPerm os.FileMode = 0o700

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string
	Fixable     bool
	FixHint     string
}

// PermissionFixer fixes file and directory permission issues.
// It is embedded in LogFileCheck to provide fix capability.
type PermissionFixer struct {
	issues []pathIssue
}

// CanFix returns true if there are any fixable permission issues.
func (f *PermissionFixer) CanFix() bool {
	return f.CountFixable() > 0
}

// Fix attempts to fix all fixable permission issues.
func (f *PermissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, f.CountFixable())
	for _, issue := range f.issues {
		if !issue.Fixable {
			continue
		}
		results = append(results, fixIssue(issue))
	}
	return results
}

// CountFixable returns the number of fixable issues.
func (f *PermissionFixer) CountFixable() int {
	count := 0
	for _, issue := range f.issues {
		if issue.Fixable {
			count++
		}
	}
	return count
}

func (f *PermissionFixer) setIssues(issues []pathIssue) {
	f.issues = issues
}

func fixIssue(issue pathIssue) FixResult {
	result := FixResult{
		Path: issue.Path,
	}

	var targetPerm os.FileMode
	switch issue.Type {
	case "file":
		targetPerm = secureFilePerm
	case "directory":
		targetPerm = secureDirPerm
	default:
		result.Description = "unknown type: " + issue.Type
		result.Error = errors.Newf("cannot fix unknown type: %s", issue.Type)
		return result
	}

	if err := os.Chmod(issue.Path, targetPerm); err != nil {
		result.Description = fmt.Sprintf("failed to chmod %04o: %v", targetPerm, err)
		result.Error = errors.Wrapf(err, "chmod %04o %s", targetPerm, issue.Path)
		return result
	}

	result.Fixed = true
	result.Description = fmt.Sprintf("chmod %04o", targetPerm)
	return result
}

// checkFilePermissions flags log files other users can read or write.
func checkFilePermissions(path string, mode os.FileMode) []pathIssue {
	perm := mode.Perm()
	if perm&0o077 == 0 {
		return nil
	}

	problem := "log file is readable by other users"
	if perm&0o022 != 0 {
		problem = "log file is writable by other users"
	}
	return []pathIssue{{
		Path:        path,
		Type:        "file",
		Problem:     fmt.Sprintf("%s (mode %s, expected %s)", problem, formatOctal(mode), formatOctal(secureFilePerm)),
		Severity:    SeverityWarning,
		Permissions: mode.Perm().String(),
		Fixable:     true,
		FixHint:     "chmod 600 " + path,
	}}
}

// checkDirectoryPermissions flags world-writable log directories.
func checkDirectoryPermissions(path string, mode os.FileMode) []pathIssue {
	if mode.Perm()&0o002 == 0 {
		return nil
	}
	return []pathIssue{{
		Path:        path,
		Type:        "directory",
		Problem:     fmt.Sprintf("log directory is world-writable (mode %s)", formatOctal(mode)),
		Severity:    SeverityWarning,
		Permissions: mode.Perm().String(),
		Fixable:     true,
		FixHint:     "chmod 700 " + path,
	}}
}

// buildPermissionResult fills result from the permission issues found.
func buildPermissionResult(result *CheckResult, issues []pathIssue) *CheckResult {
	if len(issues) == 0 {
		result.Status = SeverityPass
		result.Message = "log file is writable and private"
		return result
	}

	problems := make([]string, 0, len(issues))
	hints := make([]string, 0, len(issues))
	for _, issue := range issues {
		problems = append(problems, issue.Problem)
		hints = append(hints, issue.FixHint)
		if issue.Fixable {
			result.Fixable = true
		}
	}

	result.Status = SeverityWarning
	result.Message = problems[0]
	if len(problems) > 1 {
		result.Message = fmt.Sprintf("%s (and %d more)", problems[0], len(problems)-1)
	}
	result.Details["issues"] = problems
	result.FixHint = hints[0]
	return result
}

func formatOctal(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}
