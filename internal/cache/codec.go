package cache

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes v with msgpack for storage in the cache.
func Encode[V any](v V) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode deserializes a cached msgpack payload into V.
func Decode[V any](b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
