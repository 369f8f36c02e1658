package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxEventIDLen   = 64
	MaxEventTypeLen = 50

	// MinTimestampMs and MaxTimestampMs bound accepted client clocks:
	// 2020-01-01T00:00:00Z and 2030-01-01T00:00:00Z.
	MinTimestampMs int64 = 1577836800000
	MaxTimestampMs int64 = 1893456000000
)

// Fixed field names of a behavior event. Anything else is business data.
const (
	FieldEventID      = "event_id"
	FieldEventType    = "event_type"
	FieldUserID       = "user_id"
	FieldSessionID    = "session_id"
	FieldPage         = "page"
	FieldPageURL      = "page_url"
	FieldReferrer     = "referrer"
	FieldElementType  = "element_type"
	FieldElementID    = "element_id"
	FieldElementText  = "element_text"
	FieldElementClass = "element_class"
	FieldDuration     = "duration"
	FieldScrollDepth  = "scroll_depth"
	FieldTimestamp    = "timestamp"
	FieldContext      = "context"
)

var coreFields = map[string]struct{}{
	FieldEventID:      {},
	FieldEventType:    {},
	FieldUserID:       {},
	FieldSessionID:    {},
	FieldPage:         {},
	FieldPageURL:      {},
	FieldReferrer:     {},
	FieldElementType:  {},
	FieldElementID:    {},
	FieldElementText:  {},
	FieldElementClass: {},
	FieldDuration:     {},
	FieldScrollDepth:  {},
	FieldTimestamp:    {},
	FieldContext:      {},
}

var errNotInteger = errors.New("not an integer")

// RawEvent is one event exactly as the client submitted it.
// Decode it with json.Decoder.UseNumber so large millisecond timestamps keep their precision.
type RawEvent map[string]interface{}

// Validate checks required fields, field lengths and the timestamp range.
// It has no side effects; callers decide how to report a rejection.
func (r RawEvent) Validate() error {
	for _, field := range []string{FieldEventID, FieldEventType, FieldTimestamp} {
		if r[field] == nil {
			return fmt.Errorf("%s is required", field)
		}
	}

	if n := utf8.RuneCountInString(stringify(r[FieldEventID])); n > MaxEventIDLen {
		return fmt.Errorf("event_id too long: %d > %d", n, MaxEventIDLen)
	}
	if n := utf8.RuneCountInString(stringify(r[FieldEventType])); n > MaxEventTypeLen {
		return fmt.Errorf("event_type too long: %d > %d", n, MaxEventTypeLen)
	}

	ts, err := toInt64(r[FieldTimestamp])
	if err != nil {
		return fmt.Errorf("invalid timestamp %v: %w", r[FieldTimestamp], err)
	}
	if ts < MinTimestampMs || ts > MaxTimestampMs {
		return fmt.Errorf("timestamp %d out of range [%d, %d]", ts, MinTimestampMs, MaxTimestampMs)
	}

	return nil
}

// Valid reports whether Validate passes.
func (r RawEvent) Valid() bool {
	return r.Validate() == nil
}

// UserID returns the stringified user_id, or "" when absent.
func (r RawEvent) UserID() string {
	return optionalString(r, FieldUserID)
}

// NewEvent partitions a validated raw event into fixed columns, business data and context.
// Callers must run Validate first; NewEvent does not re-check required fields.
func NewEvent(r RawEvent) *Event {
	ts, _ := toInt64(r[FieldTimestamp])

	evt := &Event{
		EventID:      stringify(r[FieldEventID]),
		EventType:    stringify(r[FieldEventType]),
		UserID:       optionalString(r, FieldUserID),
		SessionID:    optionalString(r, FieldSessionID),
		Page:         optionalString(r, FieldPage),
		PageURL:      optionalString(r, FieldPageURL),
		Referrer:     optionalString(r, FieldReferrer),
		ElementType:  optionalString(r, FieldElementType),
		ElementID:    optionalString(r, FieldElementID),
		ElementText:  optionalString(r, FieldElementText),
		ElementClass: optionalString(r, FieldElementClass),
		Duration:     optionalInt(r, FieldDuration),
		ScrollDepth:  optionalInt(r, FieldScrollDepth),
		Timestamp:    ts,
	}

	if ctx := r[FieldContext]; !isEmpty(ctx) {
		evt.Context = ctx
	}

	for key, value := range r {
		if _, core := coreFields[key]; core || value == nil {
			continue
		}
		if evt.BusinessData == nil {
			evt.BusinessData = make(map[string]interface{})
		}
		evt.BusinessData[key] = value
	}

	return evt
}

func optionalString(r RawEvent, key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

func optionalInt(r RawEvent, key string) *int64 {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	n, err := toInt64(v)
	if err != nil {
		return nil
	}
	return &n
}

// stringify renders scalars the way a client would expect to see them echoed back.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// toInt64 coerces JSON numbers (fractions truncate toward zero) and decimal strings.
func toInt64(v interface{}) (int64, error) {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, nil
		}
		f, err := val.Float64()
		if err != nil {
			return 0, errNotInteger
		}
		return floatToInt64(f)
	case float64:
		return floatToInt64(val)
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, errNotInteger
		}
		return n, nil
	default:
		return 0, errNotInteger
	}
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, errNotInteger
	}
	return int64(math.Trunc(f)), nil
}

func isEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 0
	case float64:
		return val == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	case map[string]interface{}:
		return len(val) == 0
	case []interface{}:
		return len(val) == 0
	default:
		return false
	}
}

// UserRef is a user_id in a request body. Numbers and booleans are accepted and stringified
// the same way track events store them.
type UserRef string

func (u *UserRef) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch v.(type) {
	case nil, string, json.Number, bool:
		*u = UserRef(stringify(v))
		return nil
	default:
		return fmt.Errorf("user_id must be a string or number")
	}
}
