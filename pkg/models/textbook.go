package models

// Textbook is a virtual entity derived from a directory scan at query time;
// it is never persisted. The slug is stable only as long as the directory id
// and filename are unchanged — renaming or moving the file produces a new
// slug and silently orphans notes and tags keyed to the old one.
type Textbook struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	File     string `json:"file"`
	DirID    int    `json:"dir_id"`
	DirPath  string `json:"dir_path"`
	FullPath string `json:"full_path"`
}
