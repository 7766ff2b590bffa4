package apidocs

// HealthResponse is the shape of /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Redis  string `json:"redis" example:"disabled"`
	DB     string `json:"db" example:"ok"`
}

// UserResponse represents a user for responses.
type UserResponse struct {
	ID        string  `json:"id" example:"21cede43-86e2-4da5-a8f3-115d84ced8a4"`
	Email     string  `json:"email" example:"test@example.com"`
	FirstName string  `json:"firstName" example:"John"`
	LastName  string  `json:"lastName" example:"Doe"`
	Phone     *string `json:"phone" example:"1234567890" extensions:"x-nullable"`
	CreatedAt string  `json:"createdAt" example:"2024-05-01T10:00:00Z"`
	UpdatedAt string  `json:"updatedAt" example:"2024-05-01T10:00:00Z"`
}

type DeletedResponse struct {
	ID string `json:"id" example:"21cede43-86e2-4da5-a8f3-115d84ced8a4"`
}

type Violation struct {
	Field   string `json:"field" example:"email"`
	Rule    string `json:"rule" example:"email"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message" example:"email must be a valid email address"`
}

// ErrorResponse matches responses.ErrorResponse. Details is only set for
// validation failures.
type ErrorResponse struct {
	Error   string      `json:"error" example:"user not found"`
	Details []Violation `json:"details,omitempty"`
}
