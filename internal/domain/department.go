package domain

import "time"

// Department represents an organizational unit that can raise or receive SLAs.
type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
