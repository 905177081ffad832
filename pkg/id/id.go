package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed from crypto/rand; Monotonic keeps ids made in the same
	// millisecond strictly increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// At returns a trade id stamped with t. Ids are ULIDs, so sorting them
// sorts trades by the moment they were journaled; ids made at the same
// millisecond still increase.
func At(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	v, err := ulid.New(ulid.Timestamp(t.UTC()), mono)
	if err != nil {
		// Only possible if entropy fails or the monotonic reader overflows.
		panic(err)
	}
	return v.String()
}

// Valid reports whether s parses as a ULID. Imported ids are opaque, so
// the CLI only warns when an argument is not one.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
