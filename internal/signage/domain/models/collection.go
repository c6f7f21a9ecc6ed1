package models

import (
	"errors"
	"time"
)

var ErrUnknownCollection = errors.New("unknown collection")

// Collection is the wire name of a content collection.
type Collection string

const (
	CollectionSlides        Collection = "slides"
	CollectionRates         Collection = "rates"
	CollectionNews          Collection = "news"
	CollectionExchangeRates Collection = "exchange-rates"
)

func Collections() []Collection {
	return []Collection{CollectionSlides, CollectionRates, CollectionNews, CollectionExchangeRates}
}

func ParseCollection(s string) (Collection, error) {
	for _, c := range Collections() {
		if string(c) == s {
			return c, nil
		}
	}

	return "", ErrUnknownCollection
}

// Record is implemented by pointers to the four content entities.
type Record[T any] interface {
	*T
	RecordID() string
	Activated() bool
	Created() time.Time
	SetActive(active bool)
	Stamp(id string, createdAt, updatedAt time.Time)
	Clone() T
}
