// Package events names the mutation events carried by the relay.
//
// On the wire an event is identified by "<entity>_<verb>", e.g. "slide_created"
// or "exchange_rate_deleted". Kind is the typed form of that name.
package events

import (
	"errors"
	"strings"

	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
)

var ErrUnknownEvent = errors.New("unknown event")

type Entity string

const (
	EntitySlide        Entity = "slide"
	EntityRate         Entity = "rate"
	EntityNews         Entity = "news"
	EntityExchangeRate Entity = "exchange_rate"
)

type Verb string

const (
	VerbCreated Verb = "created"
	VerbUpdated Verb = "updated"
	VerbDeleted Verb = "deleted"
)

var (
	entities = []Entity{EntitySlide, EntityRate, EntityNews, EntityExchangeRate}
	verbs    = []Verb{VerbCreated, VerbUpdated, VerbDeleted}
)

type Kind struct {
	Entity Entity
	Verb   Verb
}

func (k Kind) String() string {
	return string(k.Entity) + "_" + string(k.Verb)
}

// All returns the twelve canonical kinds.
func All() []Kind {
	kinds := make([]Kind, 0, len(entities)*len(verbs))

	for _, e := range entities {
		for _, v := range verbs {
			kinds = append(kinds, Kind{Entity: e, Verb: v})
		}
	}

	return kinds
}

func Parse(name string) (Kind, error) {
	i := strings.LastIndexByte(name, '_')
	if i <= 0 {
		return Kind{}, ErrUnknownEvent
	}

	k := Kind{Entity: Entity(name[:i]), Verb: Verb(name[i+1:])}
	if !k.valid() {
		return Kind{}, ErrUnknownEvent
	}

	return k, nil
}

func (k Kind) valid() bool {
	var okE, okV bool

	for _, e := range entities {
		okE = okE || e == k.Entity
	}

	for _, v := range verbs {
		okV = okV || v == k.Verb
	}

	return okE && okV
}

// EntityOf maps a content collection to the entity its events are named after.
func EntityOf(c models.Collection) (Entity, error) {
	switch c {
	case models.CollectionSlides:
		return EntitySlide, nil
	case models.CollectionRates:
		return EntityRate, nil
	case models.CollectionNews:
		return EntityNews, nil
	case models.CollectionExchangeRates:
		return EntityExchangeRate, nil
	}

	return "", models.ErrUnknownCollection
}

func (e Entity) Collection() models.Collection {
	switch e {
	case EntitySlide:
		return models.CollectionSlides
	case EntityRate:
		return models.CollectionRates
	case EntityNews:
		return models.CollectionNews
	case EntityExchangeRate:
		return models.CollectionExchangeRates
	}

	return ""
}

func Created(e Entity) Kind { return Kind{Entity: e, Verb: VerbCreated} }

func Updated(e Entity) Kind { return Kind{Entity: e, Verb: VerbUpdated} }

func Deleted(e Entity) Kind { return Kind{Entity: e, Verb: VerbDeleted} }
