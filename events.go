package nphase

import (
	"fmt"
)

// ContactEventKind is the lifecycle transition of a pair.
type ContactEventKind uint8

const (
	// ContactStarted is reported on the first step a pair touches.
	ContactStarted ContactEventKind = iota
	// ContactPersisted is reported while a pair keeps touching.
	ContactPersisted
	// ContactEnded is reported on the step after a pair stopped touching.
	ContactEnded
)

func (k ContactEventKind) String() string {
	switch k {
	case ContactStarted:
		return "Started"
	case ContactPersisted:
		return "Persisted"
	case ContactEnded:
		return "Ended"
	default:
		return fmt.Sprintf("ContactEventKind(%d)", uint8(k))
	}
}

// ContactEvent describes the state of one pair at the end of a step.
type ContactEvent struct {
	Kind             ContactEventKind
	Entity1, Entity2 Entity
	Body1, Body2     Entity
	IsSensor         bool
	// TotalNormalImpulse is the impulse stored for the pair, if the solver stored any.
	TotalNormalImpulse float64
}

// ReportContacts derives events from the lifecycle flags of every entry, in ascending key order.
//
// It must run after constraints are generated and before the ended pairs are evicted.
// Pairs that were not touching in either frame produce no event.
func ReportContacts(collisions *Collisions) []ContactEvent {
	var events []ContactEvent
	collisions.Each(func(c *Contacts) {
		var kind ContactEventKind
		switch {
		case c.CollisionStarted():
			kind = ContactStarted
		case c.CollisionEnded():
			kind = ContactEnded
		case c.DuringCurrentFrame:
			kind = ContactPersisted
		default:
			return
		}
		events = append(events, ContactEvent{
			Kind:               kind,
			Entity1:            c.Entity1,
			Entity2:            c.Entity2,
			Body1:              c.Body1,
			Body2:              c.Body2,
			IsSensor:           c.IsSensor,
			TotalNormalImpulse: c.TotalNormalImpulse(),
		})
	})
	return events
}
