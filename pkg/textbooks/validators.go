package textbooks

type RenameTextbookPayload struct {
	Path    string `json:"path" validate:"required"`
	NewName string `json:"new_name" validate:"required"`
}

type DeleteTextbookQuery struct {
	Path string `query:"path" json:"path,omitempty" validate:"required"`
}

type FileQuery struct {
	Path string `query:"path" json:"path,omitempty" validate:"required"`
}
