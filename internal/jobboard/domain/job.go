package domain

type Job struct {
	ID          string // ULID
	Title       string
	Description string
	EmployerID  string
}
