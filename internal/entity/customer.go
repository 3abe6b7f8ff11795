package domain

type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Street    string
	House     string
	Korpus    string // optional building annex, may be empty
	Flat      string
}
