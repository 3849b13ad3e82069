package profile

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/resume-matcher/internal/ai"
)

var (
	locationType = reflect.TypeOf(Location{})
	intPtrType   = reflect.TypeOf((*int)(nil))
	leadingNumRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// decodeDraft maps a model response onto a CandidateProfile. Fields that fail
// to decode are left empty and reported; the rest of the draft is kept.
func decodeDraft(data map[string]any) (CandidateProfile, error) {
	var draft CandidateProfile

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &draft,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToLocationHook,
			stringToBoolHook,
			mapstructure.StringToSliceHookFunc(","),
			// last: it may return nil, which later hooks cannot take.
			numberToIntPtrHook,
		),
	})
	if err != nil {
		return CandidateProfile{}, err
	}

	err = decoder.Decode(data)
	return draft, err
}

// stringToLocationHook accepts "City, State, Country" where an object is expected.
func stringToLocationHook(from, to reflect.Type, data any) (any, error) {
	if to != locationType || from.Kind() != reflect.String {
		return data, nil
	}
	return parseLocation(data.(string)), nil
}

func stringToBoolHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Bool || from.Kind() != reflect.String {
		return data, nil
	}
	lower := strings.ToLower(strings.TrimSpace(data.(string)))
	switch lower {
	case "present", "current", "ongoing":
		return true, nil
	}
	return ai.CoerceBool(lower), nil
}

// numberToIntPtrHook reads "5", "5.5" or "5+ years" into a whole number.
func numberToIntPtrHook(from, to reflect.Type, data any) (any, error) {
	if to != intPtrType {
		return data, nil
	}

	var value float64
	switch from.Kind() {
	case reflect.String:
		match := leadingNumRe.FindString(data.(string))
		if match == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return nil, nil
		}
		value = parsed
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		value = ai.CoerceFloat(data)
	default:
		return data, nil
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, nil
	}
	return int(math.Round(value)), nil
}

func parseLocation(raw string) Location {
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	loc := Location{Address: strings.TrimSpace(raw)}
	switch len(parts) {
	case 0:
		return Location{}
	case 1:
		loc.City = parts[0]
	case 2:
		loc.City, loc.State = parts[0], parts[1]
	default:
		loc.City, loc.State, loc.Country = parts[0], parts[1], parts[len(parts)-1]
	}
	return loc
}
