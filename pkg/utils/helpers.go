package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// RandomHex returns n random bytes hex encoded. Used for request ids, so a
// failing random source falls back to the clock instead of an empty id.
func RandomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(b)
}
