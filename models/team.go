package models

type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	CrestKey *string `json:"-"`
	CrestURL *string `json:"crestUrl,omitempty"`
}
