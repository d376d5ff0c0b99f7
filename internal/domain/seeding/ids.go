package seeding

import "github.com/google/uuid"

// seedNamespace scopes name-based UUIDs to this service so identical natural
// keys always map to the same object identifier across runs.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("smartchat.seed"))

// recordID derives the deterministic object identifier for a record. The
// external identifier is the preferred natural key; fallback covers legacy
// corpora without one (e.g. question::answer for FAQs).
func recordID(class, externalID, fallback string) string {
	key := externalID
	if key == "" {
		key = fallback
	}
	return uuid.NewSHA1(seedNamespace, []byte(class+":"+key)).String()
}
