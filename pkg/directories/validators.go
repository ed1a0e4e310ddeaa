package directories

type CreateDirectoryPayload struct {
	Path string `json:"path" validate:"required"`
}
