package repository

import (
	"time"

	"github.com/google/uuid"

	"assustadus/internal/db"
	dom "assustadus/internal/domain/user"
)

const usersTable = "users"

const (
	colID        = "id"
	colEmail     = "email"
	colFirstName = "first_name"
	colLastName  = "last_name"
	colPhone     = "phone"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
)

var userColumns = []string{colID, colEmail, colFirstName, colLastName, colPhone, colCreatedAt, colUpdatedAt}

// userRow is the users table as scanned by the db package.
type userRow struct {
	ID        uuid.UUID `sql:"id"`
	Email     string    `sql:"email"`
	FirstName string    `sql:"first_name"`
	LastName  string    `sql:"last_name"`
	Phone     *string   `sql:"phone"`
	CreatedAt time.Time `sql:"created_at"`
	UpdatedAt time.Time `sql:"updated_at"`
}

func toDomainUser(r *userRow) *dom.User {
	if r == nil {
		return nil
	}
	return &dom.User{
		ID:        r.ID,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func toDomainUsers(list []userRow) []dom.User {
	res := make([]dom.User, 0, len(list))
	for i := range list {
		res = append(res, *toDomainUser(&list[i]))
	}
	return res
}

func patchData(p dom.Patch) db.Data {
	data := db.Data{}
	if p.Email != nil {
		data[colEmail] = *p.Email
	}
	if p.FirstName != nil {
		data[colFirstName] = *p.FirstName
	}
	if p.LastName != nil {
		data[colLastName] = *p.LastName
	}
	switch {
	case p.ClearPhone:
		data[colPhone] = nil
	case p.Phone != nil:
		data[colPhone] = *p.Phone
	}
	return data
}
