// Package parameters handles configuration strings of the form "key1=value1,key2,key3=value3",
// used to configure connection sets and the tools that exercise them.
package parameters

import (
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/janpfeifer/hexGo/internal/generics"
)

// Params maps configuration keys to their (unparsed) values. Keys given without a value map
// to the empty string.
type Params map[string]string

// Value types supported by GetParamOr and PopParamOr.
type Value interface {
	bool | int | float64 | string
}

// NewFromConfigString parses a configuration string. Empty parts are ignored.
func NewFromConfigString(config string) Params {
	params := make(Params)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=") // Values may contain '='.
		params[strings.TrimSpace(key)] = value
	}
	return params
}

// GetParamOr parses the value of key as type T, or returns defaultValue if key is not set.
//
// For bool types, a key without a value is interpreted as true.
func GetParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case string:
		parsed = value
	case int:
		parsed, err = strconv.Atoi(value)
	case float64:
		parsed, err = strconv.ParseFloat(value, 64)
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1":
			parsed = true
		case "false", "0":
			parsed = false
		default:
			err = errors.New("invalid boolean")
		}
	}
	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q as %T", key, value, defaultValue)
	}
	return parsed.(T), nil
}

// PopParamOr is like GetParamOr, but it also deletes key from params, so one can later check
// with CheckAllConsumed that no unknown key was given.
func PopParamOr[T Value](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// CheckAllConsumed returns an error listing the keys left in params, if any.
func CheckAllConsumed(params Params) error {
	if len(params) == 0 {
		return nil
	}
	keys := slices.Collect(generics.SortedKeys(params))
	return errors.Errorf("unknown configuration parameters: %q", keys)
}
