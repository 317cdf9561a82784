package models

// Teacher represents an instructor (docente).
type Teacher struct {
	ID        int    `db:"id" json:"id"`
	Name      string `db:"nombre" json:"nombre"`
	Surname   string `db:"apellido" json:"apellido"`
	SubjectID int    `db:"id_materia" json:"idMateria"`
	CareerID  int    `db:"id_carrera" json:"idCarrera"`
}
