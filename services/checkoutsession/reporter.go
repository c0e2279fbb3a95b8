package checkoutsession

import "context"

// StatusReporter receives the status of each flow separately. Merging the two flows into
// the single message on screen is up to the implementation.
//
//go:generate mockgen -source=reporter.go -package checkoutsession -destination reporter_mock.go StatusReporter
type StatusReporter interface {
	LoadingStarted(c context.Context, sessionUID string, flow Flow)
	LoadingStopped(c context.Context, sessionUID string, flow Flow)
	MessageSet(c context.Context, sessionUID string, flow Flow, message string)
}
