package reconciler

import (
	"errors"
	"fmt"

	"github.com/Leopold1975/signage_control/internal/signage/domain/events"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/goccy/go-json"
)

var ErrMissingID = errors.New("payload has no id")

// patch applies one verb to list in place and reports whether it changed.
//
//   - created appends the record unless its id is already present
//   - updated swaps the record with the same id, never inserts
//   - deleted removes the record whose id is the payload string
func patch[T any, PT models.Record[T]](list *[]T, verb events.Verb, data []byte) (bool, error) {
	switch verb {
	case events.VerbCreated:
		rec, id, err := decodeRecord[T, PT](data)
		if err != nil {
			return false, err
		}

		if indexOf[T, PT](*list, id) >= 0 {
			return false, nil
		}

		*list = append(*list, rec)

		return true, nil
	case events.VerbUpdated:
		rec, id, err := decodeRecord[T, PT](data)
		if err != nil {
			return false, err
		}

		i := indexOf[T, PT](*list, id)
		if i < 0 {
			return false, nil
		}

		(*list)[i] = rec

		return true, nil
	case events.VerbDeleted:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return false, fmt.Errorf("decode id error: %w", err)
		}

		i := indexOf[T, PT](*list, id)
		if i < 0 {
			return false, nil
		}

		*list = append((*list)[:i], (*list)[i+1:]...)

		return true, nil
	}

	return false, events.ErrUnknownEvent
}

func decodeRecord[T any, PT models.Record[T]](data []byte) (T, string, error) {
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, "", fmt.Errorf("decode record error: %w", err)
	}

	id := PT(&rec).RecordID()
	if id == "" {
		return rec, "", ErrMissingID
	}

	return rec, id, nil
}

func indexOf[T any, PT models.Record[T]](list []T, id string) int {
	for i := range list {
		if PT(&list[i]).RecordID() == id {
			return i
		}
	}

	return -1
}
