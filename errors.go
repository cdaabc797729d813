package reshape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Definition errors: raised while building an Entity; never recovered
	// internally, the specification has to be fixed by the caller.
	CodeBadSpec        = "bad_spec"
	CodeInvalidName    = "invalid_name"
	CodeOptionConflict = "option_conflict"
	CodeBadUsing       = "bad_using"
	CodeFrozen         = "frozen"
	CodeNotFrozen      = "not_frozen"
	// Coercion errors. CodeConvertError is the conventional code for custom
	// converters that fail with Issues.
	CodeUnknownType  = "unknown_type"
	CodeConvertError = "convert_error"
)

// Issue represents a single definition or coercion error entry.
type Issue struct {
	Path    string // Dotted field path (for example: contact.email).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Path != "" {
			fmt.Fprintf(b, "%s at %s: %s", it.Code, it.Path, it.Message)
		} else {
			fmt.Fprintf(b, "%s: %s", it.Code, it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IsUnknownType reports whether err is a conversion-not-found error. Unlike
// per-field conversion failures, these are fatal at the point of coercion.
func IsUnknownType(err error) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == CodeUnknownType {
			return true
		}
	}
	return false
}

func singleIssue(code, path, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: path, Message: msg})
}
