package domain

type Employer struct {
	ID           string // ULID
	Name         string
	ContactEmail string
	Industry     string
}
