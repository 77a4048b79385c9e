package dto

// CategoryRequest is the body for creating or renaming a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=5,max=100"`
}
