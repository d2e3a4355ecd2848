package app

import "math"

// The validation gate runs over the decoded JSON payload before any store
// I/O. Violations keep the field order of the rule table so clients see a
// stable error list.

// FieldError is one validation violation, serialized as {msg, param}.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

type rule struct {
	param string
	msg   string
	ok    func(any) bool
}

// rules covers every required creation field, in response order.
var rules = []rule{
	{"title", "Title is required", nonEmptyString},
	{"description", "Description is required", nonEmptyString},
	{"guestCount", "Guest count must be a valid positive number", positiveNumber},
	{"bedroomCount", "Bedroom count must be a valid positive number", positiveNumber},
	{"bathroomCount", "Bathroom count must be a valid positive number", positiveNumber},
	{"amenities", "Amenities must be an array", isArray},
	{"hostInfo", "Host info is required", nonEmptyString},
	{"address", "Address is required", nonEmptyString},
	{"latitude", "Latitude must be a valid decimal number", isNumber},
	{"longitude", "Longitude must be a valid decimal number", isNumber},
	{"rooms", "Rooms must be an array", isArray},
}

// ValidateCreate checks a full creation payload: every field must be
// present and well-typed.
func ValidateCreate(payload map[string]any) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		v, present := payload[r.param]
		if !present || !r.ok(v) {
			errs = append(errs, FieldError{Msg: r.msg, Param: r.param})
		}
	}
	return errs
}

// ValidateUpdate checks only the fields the partial payload includes;
// omitted fields carry no requirement on a merge-patch.
func ValidateUpdate(payload map[string]any) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		v, present := payload[r.param]
		if present && !r.ok(v) {
			errs = append(errs, FieldError{Msg: r.msg, Param: r.param})
		}
	}
	return errs
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

// JSON numbers decode as float64.
func isNumber(v any) bool {
	_, ok := v.(float64)
	return ok
}

// Counts are whole numbers; a fractional value would only fail later when
// decoded into the record's int fields.
func positiveNumber(v any) bool {
	n, ok := v.(float64)
	return ok && n >= 0 && n == math.Trunc(n)
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}
