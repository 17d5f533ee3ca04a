package flowlens

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"strings"
	"time"
)

// NewSessionID generates a session identifier of the form
// "session-<timestamp>-<random>" with both parts in base 36. Session
// IDs namespace every cache key, so unrelated sessions sharing one
// store never collide.
func NewSessionID() string {
	var b [8]byte
	// crypto/rand never fails on supported platforms; fall back to the
	// clock if it somehow does.
	if _, err := rand.Read(b[:]); err != nil {
		binary.BigEndian.PutUint64(b[:], uint64(time.Now().UnixNano()))
	}
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 36)
	return "session-" + ts + "-" + suffix
}

// Vietnamese-specific characters (and their uppercase forms) that do
// not occur in plain ASCII English text.
const vietnameseRunes = "àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ"

// DetectLanguage returns "vi" if the text contains Vietnamese
// diacritics, "en" otherwise. Used to pick the diagram-generation
// language when the caller does not set one.
func DetectLanguage(text string) string {
	lower := strings.ToLower(text)
	if strings.ContainsAny(lower, vietnameseRunes) {
		return "vi"
	}
	return "en"
}
