package calendar

type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Visibility  string `json:"visibility" binding:"omitempty,oneof=private public"`
	StartDate   string `json:"start_date"` // RFC 3339, optional
}

type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Visibility  *string `json:"visibility,omitempty" binding:"omitempty,oneof=private public"`
	StartDate   *string `json:"start_date,omitempty"`
}
