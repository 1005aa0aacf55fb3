// Package config provides shared configuration utilities.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvFloat parses the variable named by key as a float, or returns fallback
// when it is unset or empty.
func GetEnvFloat(key string, fallback float64) (float64, error) {
	value := GetEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// GetEnvDuration parses the variable named by key with time.ParseDuration,
// or returns fallback when it is unset or empty.
func GetEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := GetEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// GetEnvUint parses the variable named by key as an unsigned integer.
// ok is false when it is unset or empty.
func GetEnvUint(key string) (v uint64, ok bool, err error) {
	value := GetEnv(key, "")
	if value == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return v, true, nil
}

// GetEnvBool parses the variable named by key with strconv.ParseBool,
// or returns fallback when it is unset or empty.
func GetEnvBool(key string, fallback bool) (bool, error) {
	value := GetEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
