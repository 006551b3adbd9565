package models

// SameIdentity reports whether two database identities refer to the same
// persisted entity. A zero ID means the entity has not been persisted yet,
// and two transient entities are never considered equal.
func SameIdentity(a, b uint64) bool {
	return a != 0 && b != 0 && a == b
}
