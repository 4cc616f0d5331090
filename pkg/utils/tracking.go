package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// TrackingPrefix tags every tracking code handed to customers.
const TrackingPrefix = "ZAP-"

// GenerateTrackingID returns a tracking code of the form ZAP- followed by
// 12 uppercase hex characters. The 6 bytes come from the OS entropy pool;
// counters or timestamps would make codes guessable.
func GenerateTrackingID() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %v", err)
	}
	return TrackingPrefix + strings.ToUpper(fmt.Sprintf("%x", buf)), nil
}
