package utils

import (
	"time"

	"github.com/nJurisch/equipment-pool/models"
)

// Clock tells the services what day it is.
type Clock interface {
	Today() models.Date
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Today() models.Date { return models.DateOf(time.Now()) }

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always reports the same instant. Used by tests and by the
// export command to stamp a consistent time.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Today() models.Date { return models.DateOf(c.At) }

func (c FixedClock) Now() time.Time { return c.At }
