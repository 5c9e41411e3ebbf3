package observable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a boolean the backend sends as true/false, 0/1 or "0"/"1".
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*f = Flag(t)
	case float64:
		*f = t != 0
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		if s == "" {
			*f = false
			return nil
		}
		if b, err := strconv.ParseBool(s); err == nil {
			*f = Flag(b)
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("observable: invalid flag %q", t)
		}
		*f = n != 0
	default:
		return fmt.Errorf("observable: invalid flag %s", string(data))
	}
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

func (f Flag) String() string {
	if f {
		return "Yes"
	}
	return "No"
}
