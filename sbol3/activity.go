package sbol3

import (
	"time"

	"github.com/aquariumbio/aquarium-opil/export"
	vocab "github.com/aquariumbio/aquarium-opil/vocabulary/sbol"
)

// Activity is a PROV-O activity recording how objects were produced.
type Activity struct {
	Identified

	StartedAt time.Time
	EndedAt   time.Time
}

// NewActivity creates an activity.
func NewActivity(displayID string) *Activity {
	a := &Activity{}
	a.Init(displayID)
	return a
}

// TypeIRIs implements Object.
func (a *Activity) TypeIRIs() []string {
	return []string{vocab.ClassActivity}
}

// Properties implements Object.
func (a *Activity) Properties() []export.Triple {
	id := a.Identity()
	var triples []export.Triple
	if !a.StartedAt.IsZero() {
		triples = append(triples, export.Triple{Subject: id, Predicate: vocab.ActivityStartedAt, Object: a.StartedAt})
	}
	if !a.EndedAt.IsZero() {
		triples = append(triples, export.Triple{Subject: id, Predicate: vocab.ActivityEndedAt, Object: a.EndedAt})
	}
	return triples
}

// Children implements Object.
func (a *Activity) Children() []Object { return nil }
