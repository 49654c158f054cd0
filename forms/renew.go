package forms

import (
	"time"
)

const (
	RenewalProposal = 3 * 7 * 24 * time.Hour
	MaxRenewalAhead = 4 * 7 * 24 * time.Hour
)

type RenewBookForm struct {
	RenewalDate string `form:"renewal_date" binding:"required,datetime=2006-01-02"`
}

// NewRenewBookForm proposes a due date three weeks from today.
func NewRenewBookForm(now time.Time) RenewBookForm {

	proposed := Today(now).Add(RenewalProposal)
	return RenewBookForm{RenewalDate: proposed.Format(DateLayout)}
}

// Clean checks the renewal date is between today and four weeks ahead.
func (f RenewBookForm) Clean(now time.Time) (time.Time, FieldErrors) {

	fieldErrors := FieldErrors{}

	renewalDate, err := time.Parse(DateLayout, f.RenewalDate)
	if err != nil {
		fieldErrors.Add("renewal_date", "Enter a valid date.")
		return time.Time{}, fieldErrors
	}

	today := Today(now)

	if renewalDate.Before(today) {
		fieldErrors.Add("renewal_date", "Invalid date - renewal in past")
	}

	if renewalDate.After(today.Add(MaxRenewalAhead)) {
		fieldErrors.Add("renewal_date", "Invalid date - renewal more than 4 weeks ahead")
	}

	return renewalDate, fieldErrors
}
