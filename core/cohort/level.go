package cohort

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

var errInvalidLevel = errors.New("level must be a number or a string")

// Level identifies a proficiency level: either a number (e.g. 4) or a string label (e.g. "B1").
// It is echoed back to callers exactly as it was supplied.
type Level struct {
	name    string
	numeric bool
}

func NumericLevel(n int) Level {
	return Level{name: strconv.Itoa(n), numeric: true}
}

func LabelLevel(label string) Level {
	return Level{name: label}
}

// ParseLevel reads a level from free text (CSV cells, CLI args):
// integers become numeric levels, anything else a label.
func ParseLevel(s string) Level {
	if n, err := strconv.Atoi(s); err == nil {
		return NumericLevel(n)
	}
	return LabelLevel(s)
}

func (l Level) String() string  { return l.name }
func (l Level) IsNumeric() bool { return l.numeric }
func (l Level) IsZero() bool    { return l == Level{} }

func (l Level) MarshalJSON() ([]byte, error) {
	if l.numeric {
		return []byte(l.name), nil
	}
	return json.Marshal(l.name)
}

func (l *Level) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errInvalidLevel
	}

	switch c := data[0]; {
	case c == '"':
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return errors.Wrap(err, "decoding level label")
		}
		*l = LabelLevel(label)
	case c == '-' || (c >= '0' && c <= '9'):
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return errors.Wrap(err, "decoding numeric level")
		}
		*l = Level{name: num.String(), numeric: true}
	default: // null, bool, object, array
		return errInvalidLevel
	}
	return nil
}
