package types

// Model describes a locally available model file.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}
