package models

// Student represents an enrolled student (alumno). CareerID is an advisory
// reference to careers.id; the store does not enforce it transactionally.
type Student struct {
	ID       int    `db:"id" json:"id"`
	Name     string `db:"nombre" json:"nombre"`
	Surname  string `db:"apellido" json:"apellido"`
	Age      int    `db:"edad" json:"edad"`
	CareerID int    `db:"id_carrera" json:"idCarrera"`
}
