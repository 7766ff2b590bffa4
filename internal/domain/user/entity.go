package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch holds the fields of a partial update. Nil means "leave unchanged".
// ClearPhone removes the phone and wins over Phone.
type Patch struct {
	Email      *string
	FirstName  *string
	LastName   *string
	Phone      *string
	ClearPhone bool
}

// Apply returns a copy of u with the non-nil patch fields replaced.
func (p Patch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	switch {
	case p.ClearPhone:
		u.Phone = nil
	case p.Phone != nil:
		phone := *p.Phone
		u.Phone = &phone
	}
	return u
}
