package mypublisher

import (
	"context"
	"fmt"

	"github.com/MarcGrol/cartcheckout/lib/myevents"
	"github.com/MarcGrol/cartcheckout/lib/mylog"
	"github.com/MarcGrol/cartcheckout/lib/mytime"
)

type logPublisher struct {
	enveloper enveloper
	logger    mylog.Logger
}

func newLogPublisher(nower mytime.Nower) *logPublisher {
	return &logPublisher{
		enveloper: newEnveloper(nower),
		logger:    mylog.New("publisher"),
	}
}

func (p *logPublisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.do(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %s", err)
	}

	p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Published event %s: %s", envelope.String(), envelope.EventPayload)

	return nil
}
