package pkg

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ErrNotPointer is returned when SetConfigFromEnvVars receives a non-pointer value.
var ErrNotPointer = errors.New("config must be a pointer to a struct")

// GetenvOrDefault returns the trimmed value of the environment variable key,
// or defaultValue when it is unset, empty or whitespace-only.
func GetenvOrDefault(key string, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	return value
}

// GetenvIntOrDefault parses key as an int64, falling back to defaultValue when unset or invalid.
func GetenvIntOrDefault(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

// GetenvDurationOrDefault parses key as a time.Duration, falling back to defaultValue when unset or invalid.
func GetenvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultValue
	}

	return value
}

// SetConfigFromEnvVars fills the exported fields of the struct pointed to by s
// from the environment variables named in their `env` tags.
//
// Supported kinds are string, bool, signed integers and time.Duration.
// Unset or blank variables leave the field unchanged.
func SetConfigFromEnvVars(s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNotPointer
	}

	elem := v.Elem()
	t := elem.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		key, ok := field.Tag.Lookup("env")
		if !ok || key == "" || !field.IsExported() {
			continue
		}

		raw, set := os.LookupEnv(key)
		if !set {
			continue
		}

		if err := setField(elem.Field(i), strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("env %s: %w", key, err)
		}
	}

	return nil
}

func setField(f reflect.Value, raw string) error {
	if raw == "" {
		return nil
	}

	if f.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}

		f.SetInt(int64(d))

		return nil
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}

		f.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, f.Type().Bits())
		if err != nil {
			return err
		}

		f.SetInt(n)
	default:
		return fmt.Errorf("unsupported field kind %s", f.Kind())
	}

	return nil
}
