package models

// Asset is an uploaded file attached to a CMS document. Path is the key in
// file storage; the public URL is resolved at read time.
type Asset struct {
	Path string `bson:"path" json:"path"`
	Name string `bson:"name,omitempty" json:"name,omitempty"` // Original filename
	Alt  string `bson:"alt,omitempty" json:"alt,omitempty"`
}

// HasFile returns true if the asset points at a stored file.
func (a *Asset) HasFile() bool {
	return a != nil && a.Path != ""
}
