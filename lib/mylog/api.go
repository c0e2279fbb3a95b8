package mylog

import "context"

type Severity string

const (
	SeverityDebug Severity = "DEBUG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// New is bound at init-time: structured json on gcloud, plain text elsewhere
var New func(componentName string) Logger

// Logger logs a message for a component. The traceLabel groups all log-lines of one
// browser session.
type Logger interface {
	Log(c context.Context, traceLabel string, severity Severity, format string, a ...any)
}
