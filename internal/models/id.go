package models

// ID is the identifier type shared by every entity. The mock store hands out
// sequential ids ("1", "2", ...) while the MongoDB store uses ObjectID hex
// strings; callers treat both as opaque.
type ID string

func (id ID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id == "" }
