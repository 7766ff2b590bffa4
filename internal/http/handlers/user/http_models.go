package user

import (
	"bytes"
	"encoding/json"

	appuser "assustadus/internal/app/user"
)

type CreateUserRequest struct {
	Email     string  `json:"email" example:"test@example.com"`
	FirstName string  `json:"firstName" example:"John"`
	LastName  string  `json:"lastName" example:"Doe"`
	Phone     *string `json:"phone,omitempty" example:"1234567890"`
}

func (r CreateUserRequest) toInput() appuser.CreateUserInput {
	return appuser.CreateUserInput{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
}

// UpdateUserRequest is a partial update; omitted fields keep their value.
type UpdateUserRequest struct {
	Email     *string        `json:"email,omitempty" example:"jane@example.com"`
	FirstName *string        `json:"firstName,omitempty" example:"Navas"`
	LastName  *string        `json:"lastName,omitempty"`
	Phone     NullableString `json:"phone,omitzero" swaggertype:"string" extensions:"x-nullable"`
}

// NullableString tells an absent field apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

func (r UpdateUserRequest) toInput() appuser.UpdateUserInput {
	return appuser.UpdateUserInput{
		Email:      r.Email,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Phone:      r.Phone.Value,
		ClearPhone: r.Phone.Set && r.Phone.Value == nil,
	}
}
