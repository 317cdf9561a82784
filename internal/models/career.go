package models

// Career represents a degree program (carrera). Wire field names follow the
// original API contract.
type Career struct {
	ID    int    `db:"id" json:"id"`
	Name  string `db:"nombre" json:"nombre"`
	Years int    `db:"anios" json:"años"`
}
