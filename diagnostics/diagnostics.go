// Package diagnostics carries the non-fatal warning/error records the
// lifter emits while it walks a protocol page. The core never panics
// and never aborts the whole build for one bad packet; instead every
// recoverable anomaly is appended here and the caller decides what to
// do with it.
package diagnostics

import "fmt"

// Severity classifies a Diagnostic. Warnings mean "best effort taken,
// result may be incomplete"; Errors mean "the referenced artifact
// (a table, a switch) was discarded".
type Severity string

const (
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Diagnostic is one structured anomaly record.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	SubProto string   `json:"sub_protocol,omitempty"`
	Packet   string   `json:"packet,omitempty"`
	Stage    string   `json:"stage"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	loc := d.Stage
	if d.Packet != "" {
		loc = fmt.Sprintf("%s/%s", d.Packet, d.Stage)
	}
	if d.SubProto != "" {
		loc = fmt.Sprintf("%s/%s", d.SubProto, loc)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Severity, loc, d.Message)
}

// Log accumulates Diagnostics during a single Protocol build. It is
// not safe for concurrent use; the core builds one packet at a time,
// and each packet gets its own scope via Scoped.
type Log struct {
	entries []Diagnostic
}

// New returns an empty Log.
func New() *Log { return &Log{} }

// Warnf appends a Warning-level diagnostic.
func (l *Log) Warnf(stage, format string, args ...any) {
	l.entries = append(l.entries, Diagnostic{Severity: Warning, Stage: stage, Message: fmt.Sprintf(format, args...)})
}

// Errorf appends an Error-level diagnostic.
func (l *Log) Errorf(stage, format string, args ...any) {
	l.entries = append(l.entries, Diagnostic{Severity: Error, Stage: stage, Message: fmt.Sprintf(format, args...)})
}

// Entries returns every diagnostic recorded so far, in emission order.
func (l *Log) Entries() []Diagnostic {
	return l.entries
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (l *Log) HasErrors() bool {
	for _, e := range l.entries {
		if e.Severity == Error {
			return true
		}
	}
	return false
}

// Scoped returns a view of the Log that stamps every Diagnostic
// emitted through it with the given sub-protocol and packet name,
// so deeply nested parsing code doesn't need to thread those two
// strings through every call.
func (l *Log) Scoped(subProto, packet string) *Scope {
	return &Scope{log: l, subProto: subProto, packet: packet}
}

// Scope is a packet-scoped handle onto a Log.
type Scope struct {
	log      *Log
	subProto string
	packet   string
}

func (s *Scope) Warnf(stage, format string, args ...any) {
	s.log.entries = append(s.log.entries, Diagnostic{
		Severity: Warning, SubProto: s.subProto, Packet: s.packet, Stage: stage,
		Message: fmt.Sprintf(format, args...),
	})
}

func (s *Scope) Errorf(stage, format string, args ...any) {
	s.log.entries = append(s.log.entries, Diagnostic{
		Severity: Error, SubProto: s.subProto, Packet: s.packet, Stage: stage,
		Message: fmt.Sprintf(format, args...),
	})
}
