package parser

import (
	"github.com/hashicorp/hcl/v2"
)

// Reporter accumulates recoverable parse problems as hcl diagnostics. The
// parser never aborts on a structural problem: it reports here and keeps
// scanning, so one malformed declaration does not block the rest of the
// document. Callers decide fatality by inspecting the collected diagnostics.
type Reporter struct {
	diags hcl.Diagnostics
}

// NewReporter creates an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Error records a problem. The detail carries the parse-state path so the
// problem can be located structurally even without the source range.
func (r *Reporter) Error(summary, detail string, subject hcl.Range) {
	r.diags = append(r.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject.Ptr(),
	})
}

// Append merges diagnostics produced by a collaborator, typically a
// namespace handler.
func (r *Reporter) Append(diags hcl.Diagnostics) {
	r.diags = append(r.diags, diags...)
}

// Diagnostics returns everything reported so far.
func (r *Reporter) Diagnostics() hcl.Diagnostics {
	return r.diags
}

// HasErrors reports whether any error-severity problem was recorded.
func (r *Reporter) HasErrors() bool {
	return r.diags.HasErrors()
}

// parseState tracks where in the declaration tree the parser currently is,
// as a stack of human-readable entries. Its snapshot becomes the detail text
// of reported problems.
type parseState struct {
	entries []string
}

func (s *parseState) push(entry string) {
	s.entries = append(s.entries, entry)
}

func (s *parseState) pop() {
	s.entries = s.entries[:len(s.entries)-1]
}

// String renders the current path, outermost entry first.
func (s *parseState) String() string {
	if len(s.entries) == 0 {
		return ""
	}
	out := "in " + s.entries[0]
	for _, e := range s.entries[1:] {
		out += " > " + e
	}
	return out
}
