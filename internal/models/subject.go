package models

// Subject represents a course (materia) linking a career and a teacher.
// Career and Teacher are populated only by list queries, which join the
// related rows; detail lookups leave them nil and serve the flat shape.
type Subject struct {
	ID        int    `db:"id" json:"id"`
	Name      string `db:"nombre" json:"nombre"`
	CareerID  int    `db:"id_carrera" json:"idCarrera"`
	TeacherID int    `db:"id_docente" json:"idDocente"`

	Career  *SubjectCareer  `db:"-" json:"Carrera,omitempty"`
	Teacher *SubjectTeacher `db:"-" json:"Docente,omitempty"`
}

// SubjectCareer is the career summary embedded in subject listings.
type SubjectCareer struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// SubjectTeacher is the teacher summary embedded in subject listings.
type SubjectTeacher struct {
	ID      int    `json:"id"`
	Name    string `json:"nombre"`
	Surname string `json:"apellido"`
}
