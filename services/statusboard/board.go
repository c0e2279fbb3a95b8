package statusboard

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/MarcGrol/cartcheckout/lib/myerrors"
	"github.com/MarcGrol/cartcheckout/lib/mylog"
	"github.com/MarcGrol/cartcheckout/lib/mystore"
	"github.com/MarcGrol/cartcheckout/lib/mytime"
	"github.com/MarcGrol/cartcheckout/services/checkoutsession"
)

// Board keeps the status of each browser session. It receives the reports of both flows
// and merges them on read.
type Board struct {
	store  mystore.Store[SessionStatus]
	nower  mytime.Nower
	logger mylog.Logger
}

func New(store mystore.Store[SessionStatus], nower mytime.Nower) *Board {
	return &Board{
		store:  store,
		nower:  nower,
		logger: mylog.New("statusboard"),
	}
}

func (b *Board) LoadingStarted(c context.Context, sessionUID string, flow checkoutsession.Flow) {
	b.update(c, sessionUID, flow, func(session *SessionStatus, status *FlowStatus) {
		status.Pending++
	})
}

func (b *Board) LoadingStopped(c context.Context, sessionUID string, flow checkoutsession.Flow) {
	b.update(c, sessionUID, flow, func(session *SessionStatus, status *FlowStatus) {
		if status.Pending > 0 {
			status.Pending--
		}
	})
}

func (b *Board) MessageSet(c context.Context, sessionUID string, flow checkoutsession.Flow, message string) {
	b.update(c, sessionUID, flow, func(session *SessionStatus, status *FlowStatus) {
		session.LastSequence++
		status.Message = message
		status.MessageSequence = session.LastSequence
	})
}

// A failing report must not break the checkout itself: it is only logged.
func (b *Board) update(c context.Context, sessionUID string, flow checkoutsession.Flow, mutate func(session *SessionStatus, status *FlowStatus)) {
	now := b.nower.Now()

	err := b.store.RunInTransaction(c, func(c context.Context) error {
		session, exists, err := b.store.Get(c, sessionUID)
		if err != nil {
			return fmt.Errorf("error fetching status: %s", err)
		}
		if !exists {
			session = newSessionStatus(sessionUID, now)
		}
		// stored values are shared with readers: never mutate their map in place
		session.Flows = maps.Clone(session.Flows)
		if session.Flows == nil {
			session.Flows = map[checkoutsession.Flow]FlowStatus{}
		}

		status := session.Flows[flow]
		mutate(&session, &status)
		status.LastModified = now
		session.Flows[flow] = status
		session.LastModified = now

		err = b.store.Put(c, sessionUID, session)
		if err != nil {
			return fmt.Errorf("error storing status: %s", err)
		}
		return nil
	})
	if err != nil {
		b.logger.Log(c, sessionUID, mylog.SeverityError, "Error updating %s status: %s", flow, err)
	}
}

func (b *Board) Get(c context.Context, sessionUID string) (SessionStatus, error) {
	session, exists, err := b.store.Get(c, sessionUID)
	if err != nil {
		return SessionStatus{}, myerrors.NewInternalError(fmt.Errorf("error fetching status: %s", err))
	}
	if !exists {
		return newSessionStatus(sessionUID, b.nower.Now()), nil
	}
	return session, nil
}

// Current returns the merged status shown to the session. An unknown session is idle.
func (b *Board) Current(c context.Context, sessionUID string) (checkoutsession.Status, error) {
	session, err := b.Get(c, sessionUID)
	if err != nil {
		return checkoutsession.Status{}, err
	}
	return session.Current(), nil
}

// Expire forgets sessions that did not change for maxAge and returns how many were removed.
func (b *Board) Expire(c context.Context, maxAge time.Duration) (int, error) {
	deadline := b.nower.Now().Add(-maxAge)
	removed := 0

	err := b.store.RunInTransaction(c, func(c context.Context) error {
		sessions, err := b.store.List(c)
		if err != nil {
			return fmt.Errorf("error listing statuses: %s", err)
		}
		for _, session := range sessions {
			if session.LastModified.After(deadline) {
				continue
			}
			err = b.store.Delete(c, session.SessionUID)
			if err != nil {
				return fmt.Errorf("error deleting status %s: %s", session.SessionUID, err)
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, myerrors.NewInternalError(err)
	}

	if removed > 0 {
		b.logger.Log(c, "", mylog.SeverityInfo, "Expired %d session statuses", removed)
	}

	return removed, nil
}
