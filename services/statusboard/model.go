package statusboard

import (
	"time"

	"github.com/MarcGrol/cartcheckout/services/checkoutsession"
)

// FlowStatus is the last reported status of one flow
type FlowStatus struct {
	// Pending counts steps that reported loading but not yet stopped
	Pending         int       `json:"pending"`
	Message         string    `json:"message,omitempty"`
	MessageSequence int64     `json:"messageSequence,omitempty"`
	LastModified    time.Time `json:"lastModified"`
}

type SessionStatus struct {
	SessionUID   string                              `json:"sessionUID"`
	Flows        map[checkoutsession.Flow]FlowStatus `json:"flows"`
	LastSequence int64                               `json:"lastSequence"`
	CreatedAt    time.Time                           `json:"createdAt"`
	LastModified time.Time                           `json:"lastModified"`
}

func newSessionStatus(sessionUID string, now time.Time) SessionStatus {
	return SessionStatus{
		SessionUID:   sessionUID,
		Flows:        map[checkoutsession.Flow]FlowStatus{},
		CreatedAt:    now,
		LastModified: now,
	}
}

// Current merges the flows into the one status on screen: loading if any flow is loading,
// otherwise the most recent message of any flow.
func (s SessionStatus) Current() checkoutsession.Status {
	latest := FlowStatus{}
	for _, flow := range s.Flows {
		if flow.Pending > 0 {
			return checkoutsession.Status{Loading: true}
		}
		if flow.Message != "" && flow.MessageSequence > latest.MessageSequence {
			latest = flow
		}
	}
	return checkoutsession.Status{Message: latest.Message}
}
