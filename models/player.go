package models

type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	TeamName string `json:"teamName"`
	Guardian bool   `json:"guardian"`
}
