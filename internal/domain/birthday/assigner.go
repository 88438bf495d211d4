package birthday

import (
	"fmt"
	"time"

	"applebot/internal/domain"
)

// DateFormat is the format members must use in the verification channel.
const DateFormat = "01/02/2006" // MM/DD/YYYY

// adulthoodAge is the age at which a member gets the Adult role.
const adulthoodAge = 18

// Role is the age bracket a verified member falls in.
type Role string

const (
	RoleAdult Role = "Adult"
	RoleMinor Role = "Minor"
)

// Verdict is the result of checking a submitted birthdate.
type Verdict struct {
	BirthDate time.Time
	Age       int
	Role      Role
	TooYoung  bool   // below the server's minimum age
	Command   string // commande à transmettre au Birthday Bot par un modérateur
}

// Assigner validates submitted birthdates and derives the age-gated role.
// It is stateless; the caller supplies "today" so tests control time.
type Assigner struct {
	minimumAge int
}

func NewAssigner(minimumAge int) *Assigner {
	return &Assigner{minimumAge: minimumAge}
}

// Check parses input as MM/DD/YYYY, computes the member's age at today and
// classifies it. A date that does not parse is ErrBirthdateFormat; a date in
// the future is ErrBirthdateInFuture.
func (a *Assigner) Check(username, input string, today time.Time) (Verdict, error) {
	born, err := time.Parse(DateFormat, input)
	if err != nil {
		return Verdict{}, domain.ErrBirthdateFormat
	}

	age := Age(born, today)
	if age < 0 {
		return Verdict{}, domain.ErrBirthdateInFuture
	}

	v := Verdict{
		BirthDate: born,
		Age:       age,
		Role:      RoleMinor,
		TooYoung:  age < a.minimumAge,
		Command:   fmt.Sprintf("/override set-birthday target:@%s date:%s", username, born.Format("02 January")),
	}
	if age >= adulthoodAge {
		v.Role = RoleAdult
	}
	return v, nil
}

// Age is the number of whole years between born and today. The year counts
// only once the birthday has passed in today's year.
func Age(born, today time.Time) int {
	age := today.Year() - born.Year()
	if today.Month() < born.Month() ||
		(today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}
	return age
}
