package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"cloud.google.com/go/pubsub"

	"github.com/MarcGrol/cartcheckout/lib/myevents"
	"github.com/MarcGrol/cartcheckout/lib/mytime"
)

type gcloudPublisher struct {
	sync.Mutex
	client    *pubsub.Client
	topics    map[string]*pubsub.Topic
	enveloper enveloper
}

func newGcloudPublisher(c context.Context, projectID string, nower mytime.Nower) (*gcloudPublisher, func(), error) {
	client, err := pubsub.NewClient(c, projectID)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error creating pubsub-client: %s", err)
	}

	p := &gcloudPublisher{
		client:    client,
		topics:    map[string]*pubsub.Topic{},
		enveloper: newEnveloper(nower),
	}

	return p, func() {
		p.Lock()
		defer p.Unlock()
		for _, topic := range p.topics {
			topic.Stop()
		}
		client.Close()
	}, nil
}

func (p *gcloudPublisher) topic(c context.Context, topicName string) (*pubsub.Topic, error) {
	p.Lock()
	defer p.Unlock()

	topic, found := p.topics[topicName]
	if found {
		return topic, nil
	}

	topic = p.client.Topic(topicName)
	exists, err := topic.Exists(c)
	if err != nil {
		return nil, fmt.Errorf("error checking if topic %s exists: %s", topicName, err)
	}
	if !exists {
		topic, err = p.client.CreateTopic(c, topicName)
		if err != nil {
			return nil, fmt.Errorf("error creating topic %s: %s", topicName, err)
		}
		log.Printf("*** Created topic %s", topicName)
	}
	p.topics[topicName] = topic

	return topic, nil
}

func (p *gcloudPublisher) Publish(c context.Context, topicName string, event myevents.Event) error {
	envelope, err := p.enveloper.do(topicName, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %s", err)
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("error serializing envelope: %s", err)
	}

	topic, err := p.topic(c, topicName)
	if err != nil {
		return err
	}

	_, err = topic.Publish(c, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"eventTypeName": envelope.EventTypeName,
			"aggregateUID":  envelope.AggregateUID,
		},
	}).Get(c)
	if err != nil {
		return fmt.Errorf("error publishing event on topic %s: %s", topicName, err)
	}

	return nil
}
