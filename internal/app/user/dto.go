package user

import (
	"time"

	"github.com/google/uuid"

	dom "assustadus/internal/domain/user"
)

type UserDto struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateUserInput struct {
	Email     string  `json:"email" validate:"required,email"`
	FirstName string  `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string  `json:"lastName" validate:"required,min=1,max=50"`
	Phone     *string `json:"phone,omitempty" validate:"omitnil,max=20"`
}

// UpdateUserInput is a partial update: nil fields are left unchanged and
// ClearPhone removes the stored phone.
type UpdateUserInput struct {
	Email      *string `json:"email,omitempty" validate:"omitnil,email"`
	FirstName  *string `json:"firstName,omitempty" validate:"omitnil,min=1,max=50"`
	LastName   *string `json:"lastName,omitempty" validate:"omitnil,min=1,max=50"`
	Phone      *string `json:"phone,omitempty" validate:"omitnil,max=20"`
	ClearPhone bool    `json:"-"`
}

type DeletedUserDto struct {
	ID uuid.UUID `json:"id"`
}

func (in UpdateUserInput) patch() dom.Patch {
	return dom.Patch{
		Email:      in.Email,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Phone:      in.Phone,
		ClearPhone: in.ClearPhone,
	}
}

func toDTO(u *dom.User) *UserDto {
	if u == nil {
		return nil
	}
	return &UserDto{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toDTOs(list []dom.User) []UserDto {
	res := make([]UserDto, 0, len(list))
	for _, u := range list {
		item := u // copy
		res = append(res, *toDTO(&item))
	}
	return res
}
