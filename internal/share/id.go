package share

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// now is a hook for tests that pin id generation.
var now = time.Now

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.IntN(len(base36))]
	}
	return string(b)
}

// NewImportID returns the composite id assigned to every method imported
// from JSON: epoch millis plus a random base36 suffix. Imported documents
// never keep their original id, so repeated imports cannot collide with
// existing records.
func NewImportID() string {
	return strconv.FormatInt(now().UnixMilli(), 10) + "-" + randBase36(9)
}

// newMethodID is the legacy id shape for methods recovered from shared text
// that carries no @METHOD_ID@ tag.
func newMethodID() string {
	return "method-" + strconv.FormatInt(now().UnixMilli(), 10)
}

// newNoteID is the legacy id shape for brewing notes recovered from text.
func newNoteID() string {
	return "note-" + strconv.FormatInt(now().UnixMilli(), 10)
}

// NewBeanID identifies newly created beans. The legacy format fixes no
// shape for bean ids, so a UUID is used.
func NewBeanID() string {
	return "bean-" + uuid.NewString()
}
