package mypublisher

import (
	"context"
	"os"

	"github.com/MarcGrol/cartcheckout/lib/myevents"
	"github.com/MarcGrol/cartcheckout/lib/mytime"
)

//go:generate mockgen -source=api.go -package mypublisher -destination publisher_mock.go Publisher
type Publisher interface {
	Publish(c context.Context, topic string, event myevents.Event) error
}

// New publishes on Google Cloud Pub/Sub when running on gcloud and only logs otherwise
func New(c context.Context, nower mytime.Nower) (Publisher, func(), error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID != "" {
		return newGcloudPublisher(c, projectID, nower)
	}
	return newLogPublisher(nower), func() {}, nil
}
