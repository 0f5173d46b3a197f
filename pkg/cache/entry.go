package cache

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/golang/snappy"
)

// Entry layout shared by the file and Redis backends:
//
//	[ExpiresAt:8 unix nanos, 0 = never][snappy block]
const entryHeader = 8

var errCorruptEntry = errors.New("corrupt cache entry")

// encodeEntry frames data with its expiry and compresses it.
func encodeEntry(data []byte, ttl time.Duration, now time.Time) []byte {
	var expires int64
	if ttl > 0 {
		expires = now.Add(ttl).UnixNano()
	}
	buf := make([]byte, entryHeader, entryHeader+snappy.MaxEncodedLen(len(data)))
	binary.BigEndian.PutUint64(buf, uint64(expires))
	return append(buf, snappy.Encode(nil, data)...)
}

// decodeEntry reverses encodeEntry. Expired entries report ok=false.
func decodeEntry(raw []byte, now time.Time) (data []byte, ok bool, err error) {
	if len(raw) < entryHeader {
		return nil, false, errCorruptEntry
	}
	if expires := int64(binary.BigEndian.Uint64(raw)); expires != 0 && now.UnixNano() > expires {
		return nil, false, nil
	}
	data, err = snappy.Decode(nil, raw[entryHeader:])
	if err != nil {
		return nil, false, errCorruptEntry
	}
	return data, true, nil
}
