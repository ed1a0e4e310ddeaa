package notes

import "mime/multipart"

type SetNotePayload struct {
	Content string `json:"content"`
	Format  string `json:"format" default:"html"`
}

type SaveNoteImagePayload struct {
	Filename  string                           `form:"filename" json:"filename,omitempty"`
	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
}

type SaveNoteImageResponse struct {
	ID int `json:"id"`
}

type ImportLegacyNotesResponse struct {
	Count int `json:"count"`
}
