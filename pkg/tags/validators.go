package tags

type CreateTagPayload struct {
	Name  string `json:"name" mod:"trim" validate:"required"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateTagPayload struct {
	Color string `json:"color" validate:"required,hexcolor"`
}
