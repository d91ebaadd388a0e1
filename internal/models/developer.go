package models

// Status is the lifecycle state of a developer record.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusDeleted
}

// Developer is the persisted developer record. ID is zero until the store assigns one.
type Developer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Specialty string
	Status    Status
}
