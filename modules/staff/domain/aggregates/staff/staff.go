package staff

import (
	"strings"
	"time"
)

// Staff is the canonical identity for one organization member. The identity
// key is minted once, at first encounter of the member's employee number,
// and is never rewritten afterwards; everything else about the member lives
// in the history ledgers that reference it.
type Staff struct {
	userID    string
	name      string
	birthday  time.Time
	hireDate  time.Time
	updatedAt time.Time
}

func New(userID, name string, birthday, hireDate time.Time) Staff {
	return Staff{
		userID:   strings.TrimSpace(userID),
		name:     strings.TrimSpace(name),
		birthday: birthday,
		hireDate: hireDate,
	}
}

func Hydrate(userID, name string, birthday, hireDate, updatedAt time.Time) Staff {
	return Staff{
		userID:    strings.TrimSpace(userID),
		name:      strings.TrimSpace(name),
		birthday:  birthday,
		hireDate:  hireDate,
		updatedAt: updatedAt,
	}
}

func (s Staff) UserID() string       { return s.userID }
func (s Staff) Name() string         { return s.name }
func (s Staff) Birthday() time.Time  { return s.birthday }
func (s Staff) HireDate() time.Time  { return s.hireDate }
func (s Staff) UpdatedAt() time.Time { return s.updatedAt }
func (s Staff) IsZero() bool         { return s.userID == "" }
