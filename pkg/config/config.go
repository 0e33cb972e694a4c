package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

// Source identifies where a configuration value came from
type Source string

const (
	SourceLiteral     Source = "literal"
	SourceEnvironment Source = "environment"
	SourceDefault     Source = "default"
)

// ErrMissingRequiredInput is matched by every MissingRequiredInputError
var ErrMissingRequiredInput = errors.New("missing required input")

// MissingRequiredInputError reports a required environment variable that is
// unset or empty.
type MissingRequiredInputError struct {
	Key string
}

func (e *MissingRequiredInputError) Error() string {
	return fmt.Sprintf("%s environment variable is required", e.Key)
}

func (e *MissingRequiredInputError) Is(target error) bool {
	return target == ErrMissingRequiredInput
}

// ErrInvalidInput is matched by every InvalidInputError
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports an environment variable whose value cannot be
// carried into the rendered configuration unchanged.
type InvalidInputError struct {
	Key    string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s environment variable %s", e.Key, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Env looks up an environment variable
type Env func(key string) (string, bool)

// OSEnv reads the process environment
func OSEnv() Env {
	return os.LookupEnv
}

// MapEnv returns an Env backed by a copy of m
func MapEnv(m map[string]string) Env {
	values := make(map[string]string, len(m))
	for k, v := range m {
		values[k] = v
	}
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// FileEnv reads a dotenv file. The file replaces the process environment;
// variables not listed in it are treated as unset.
func FileEnv(path string) (Env, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return MapEnv(values), nil
}

// Resolver performs environment lookups
type Resolver struct {
	env Env
}

// NewResolver creates a resolver reading from env. A nil env reads the
// process environment.
func NewResolver(env Env) *Resolver {
	if env == nil {
		env = OSEnv()
	}
	return &Resolver{env: env}
}

// Lookup returns the value of key when it is set and non-empty
func (r *Resolver) Lookup(key string) (string, bool) {
	v, ok := r.env(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Resolve returns the value of key, or def when key is unset or empty
func (r *Resolver) Resolve(key, def string) (string, Source) {
	if v, ok := r.Lookup(key); ok {
		return v, SourceEnvironment
	}
	return def, SourceDefault
}

// Require returns the value of key or a *MissingRequiredInputError
func (r *Resolver) Require(key string) (string, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return "", &MissingRequiredInputError{Key: key}
	}
	return v, nil
}

// CheckEncoding returns an *InvalidInputError for the first key whose value
// is not valid UTF-8. Unset keys are skipped.
func (r *Resolver) CheckEncoding(keys ...string) error {
	for _, key := range keys {
		if v, ok := r.Lookup(key); ok && !utf8.ValidString(v) {
			return &InvalidInputError{Key: key, Reason: "is not valid UTF-8"}
		}
	}
	return nil
}
