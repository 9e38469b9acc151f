// Package rpcs exposes handlers over http. Handlers receive a decoded
// request body and return the value to encode in the response.
package rpcs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"strconv"
)

// Handler handles a decoded request
type Handler interface {
	Handle(ctx context.Context, v interface{}) (interface{}, error)
}

// HandlerFunc allows functions to act as a Handler
type HandlerFunc func(ctx context.Context, v interface{}) (interface{}, error)

// Handle is the implementation of Handler for HandlerFunc
func (f HandlerFunc) Handle(ctx context.Context, v interface{}) (interface{}, error) {
	return f(ctx, v)
}

// EntityFactory creates the values request bodies are decoded into. A
// factory that returns nil marks a handler that expects no body
type EntityFactory interface {
	Create() interface{}
}

// EntityFactoryFunc allows functions to act as an EntityFactory
type EntityFactoryFunc func() interface{}

// Create is the implementation of EntityFactory for EntityFactoryFunc
func (f EntityFactoryFunc) Create() interface{} {
	return f()
}

// Encoder writes values to a response
type Encoder interface {
	Encode(w io.Writer, v interface{}) error
}

// JsonEncoder encodes values as json documents
type JsonEncoder struct{}

// Encode is the implementation of Encoder for JsonEncoder
func (JsonEncoder) Encode(w io.Writer, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

// ErrReadLimitExceeded is returned when a body is longer than
// the limit it is read with
var ErrReadLimitExceeded = errors.New("read limit exceeded")

// ReadLimitProps limits how much of a body is read
type ReadLimitProps struct {
	// Limit is the maximum number of bytes read
	Limit int64

	// FailOnExceed returns an error instead of truncating bodies
	// longer than Limit
	FailOnExceed bool
}

// JsonDecoder decodes json documents
type JsonDecoder struct{}

// DecodeWithLimit decodes the json document read from r into v
func (JsonDecoder) DecodeWithLimit(r io.Reader, v interface{}, props ReadLimitProps) error {
	data, err := io.ReadAll(io.LimitReader(r, props.Limit+1))
	if err != nil {
		return err
	}

	if int64(len(data)) > props.Limit {
		if props.FailOnExceed {
			return ErrReadLimitExceeded
		}
		data = data[:props.Limit]
	}

	return json.Unmarshal(data, v)
}

// ParseTraceID parses the trace id sent by a client. A new trace id is
// generated when the client did not send a valid one
func ParseTraceID(s string) int64 {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil && id > 0 {
		return id
	}

	return rand.Int63n(1<<62) + 1
}
