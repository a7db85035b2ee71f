package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed IDs. The version suffix leaves room
// for algorithm migration without colliding with old IDs.
const (
	DomainAction = "euclid/action/v1"
	DomainTrace  = "euclid/trace/v1"
)

// hashWithDomain computes SHA256(domain || 0x00 || data). The null separator
// keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ActionID computes the content-addressed ID of one dispatched action.
// The same session, sequence number, and payload always produce the same
// ID, across restarts and replays, which is what makes appends idempotent.
func ActionID(sessionToken string, seq int64, payload VObject) (string, error) {
	obj := VObject{
		"session": VString(sessionToken),
		"seq":     VInt(seq),
		"payload": payload,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ActionID: %w", err)
	}
	return hashWithDomain(DomainAction, canonical), nil
}

// TraceDigest computes a single digest over an ordered action-ID list, used
// to compare whole traces cheaply.
func TraceDigest(actionIDs []string) (string, error) {
	arr := make(VArray, len(actionIDs))
	for i, id := range actionIDs {
		arr[i] = VString(id)
	}
	canonical, err := MarshalCanonical(VObject{"actions": arr})
	if err != nil {
		return "", fmt.Errorf("TraceDigest: %w", err)
	}
	return hashWithDomain(DomainTrace, canonical), nil
}

// MustActionID is ActionID that panics on error, for tests with known-good
// inputs.
func MustActionID(sessionToken string, seq int64, payload VObject) string {
	id, err := ActionID(sessionToken, seq, payload)
	if err != nil {
		panic(err)
	}
	return id
}
