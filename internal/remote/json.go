package remote

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Truthy decodes the loose booleans the PHP backend emits: true, 1, "1",
// "true", "ok", "success".
type Truthy bool

func (t *Truthy) UnmarshalJSON(b []byte) error {
	*t = Truthy(truthy(b))
	return nil
}

func truthy(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}

	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true", "ok", "success", "yes":
			return true
		}
	}
	return false
}

// FlexInt accepts both 7 and "7".
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}
