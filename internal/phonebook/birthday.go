package phonebook

import (
	"time"

	"github.com/roach88/phonebook/internal/contact"
)

// Clock supplies the current time to NextBirthday callers.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Birthday is the result of NextBirthday.
type Birthday struct {
	Contact contact.Contact
	Date    time.Time // midnight of the upcoming birthday, in now's location
	Days    int       // whole days from now until Date, rounded down
}

// Upcoming returns the next occurrence of birth relative to now and the whole
// number of days until it. An occurrence earlier than now, including midnight
// of today when now is later in the day, moves to next year.
//
// Day counts use wall-clock arithmetic so a DST change between now and the
// birthday does not shift the result.
func Upcoming(birth contact.Date, now time.Time) (time.Time, int) {
	wallNow := time.Date(now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)

	next := birth.Anniversary(now.Year(), time.UTC)
	if next.Before(wallNow) {
		next = birth.Anniversary(now.Year()+1, time.UTC)
	}

	days := int(next.Sub(wallNow) / (24 * time.Hour))
	local := time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, now.Location())
	return local, days
}

// NextBirthday finds the contact whose birthday comes soonest after now.
// Contacts without a birth date are skipped. On a tie the earlier contact
// wins. ok is false when no contact has a birth date.
func (b *Book) NextBirthday(now time.Time) (Birthday, bool) {
	var (
		best  Birthday
		found bool
	)

	for _, c := range b.contacts {
		if c.BirthDate == nil {
			continue
		}
		date, days := Upcoming(*c.BirthDate, now)
		if !found || days < best.Days {
			best = Birthday{Contact: c, Date: date, Days: days}
			found = true
		}
	}

	return best, found
}
