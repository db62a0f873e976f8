package model

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"sync/atomic"
	"time"
)

// IDLength is the length of a record identifier in hex characters.
const IDLength = 24

var (
	processUnique [5]byte
	idCounter     atomic.Uint32
)

func init() {
	if _, err := rand.Read(processUnique[:]); err != nil {
		panic("model: cannot seed identifier generator: " + err.Error())
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic("model: cannot seed identifier counter: " + err.Error())
	}
	idCounter.Store(binary.BigEndian.Uint32(seed[:]))
}

// NewID returns a new 12-byte identifier encoded as 24 lowercase hex characters.
// Layout: 4-byte big-endian Unix seconds, 5 process-unique random bytes, 3-byte counter.
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(time.Now().Unix()))
	copy(b[4:9], processUnique[:])
	c := idCounter.Add(1)
	b[9] = byte(c >> 16)
	b[10] = byte(c >> 8)
	b[11] = byte(c)
	return hex.EncodeToString(b[:])
}

// NormalizeID validates that id is store-addressable and returns its canonical
// lowercase form.
func NormalizeID(id string) (string, bool) {
	if len(id) != IDLength {
		return "", false
	}
	if _, err := hex.DecodeString(id); err != nil {
		return "", false
	}
	return strings.ToLower(id), true
}
