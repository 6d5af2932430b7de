package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxBody caps request bodies when the caller does not pass a limit.
const DefaultMaxBody int64 = 1 << 20

// Decode reads a single JSON object into an input value. Unknown fields,
// trailing data and bodies over max bytes are reported as field errors on
// "body" so the caller can answer 400 the same way as for schema failures.
func Decode[I any](r io.Reader, max int64) (I, error) {
	var in I
	if max <= 0 {
		max = DefaultMaxBody
	}
	dec := json.NewDecoder(io.LimitReader(r, max+1))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, decodeError(err, max)
	}
	if dec.More() {
		return in, Field("body", "must contain a single JSON object")
	}
	return in, nil
}

func decodeError(err error, max int64) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return Field("body", "must not be empty")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return Field("body", "is truncated or larger than %d bytes", max)
	case errors.As(err, &syntaxErr):
		return Field("body", "malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return Field(field, "has the wrong type (expected %s)", typeErr.Type)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return Field(name, "is not a recognized field")
	default:
		return Field("body", "%s", fmt.Sprint(err))
	}
}
