package objects

import (
	"reflect"
	"time"
)

type LoanStatus string

const (
	MaintenanceStatus LoanStatus = "m"
	OnLoanStatus      LoanStatus = "o"
	AvailableStatus   LoanStatus = "a"
	ReservedStatus    LoanStatus = "r"
)

var loanStatusLabels = map[LoanStatus]string{
	MaintenanceStatus: "Maintenance",
	OnLoanStatus:      "On loan",
	AvailableStatus:   "Available",
	ReservedStatus:    "Reserved",
}

// LoanStatuses lists statuses in the order they are offered in forms.
var LoanStatuses = []LoanStatus{MaintenanceStatus, OnLoanStatus, AvailableStatus, ReservedStatus}

func (s LoanStatus) IsValid() bool {
	_, ok := loanStatusLabels[s]
	return ok
}

func (s LoanStatus) Label() string {

	label, ok := loanStatusLabels[s]
	if !ok {
		return string(s)
	}

	return label
}

// BookInstance is a loanable copy of a Book.
type BookInstance struct {
	InstanceID string     `json:"instance_id" bson:"instance_id,omitempty"`
	BookID     string     `json:"book_id" bson:"book_id,omitempty"`
	Imprint    string     `json:"imprint" bson:"imprint,omitempty"`
	DueBack    *time.Time `json:"due_back,omitempty" bson:"due_back,omitempty"`
	Status     LoanStatus `json:"status" bson:"status,omitempty"`
	BorrowerID string     `json:"borrower_id,omitempty" bson:"borrower_id,omitempty"`
}

func (i BookInstance) GetID() string {
	return i.InstanceID
}

func (i BookInstance) IsNil() bool {
	return reflect.ValueOf(i).IsZero()
}

// IsOverdue reports whether the due date is before the day of now.
func (i BookInstance) IsOverdue(now time.Time) bool {

	if i.DueBack == nil {
		return false
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	return i.DueBack.Before(today)
}
