package relay

import (
	"encoding/json"
	"errors"
)

var ErrBadFrame = errors.New("frame must be an object with a non-empty event")

type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func parseFrame(b []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(b, &f); err != nil {
		return Frame{}, errors.Join(ErrBadFrame, err)
	}

	if f.Event == "" {
		return Frame{}, ErrBadFrame
	}

	return f, nil
}
