package arm

import (
	"fmt"

	"github.com/neoaces/arm/internal/dynamo"
)

// Link is a uniform rod pivoting about one end.
type Link struct {
	mass   float32
	length float32
}

func NewLink(mass, length float32) (Link, error) {
	if err := checkMass(mass); err != nil {
		return Link{}, err
	}
	if err := checkLength(length); err != nil {
		return Link{}, err
	}
	return Link{mass: mass, length: length}, nil
}

func (l Link) Mass() float32   { return l.mass }
func (l Link) Length() float32 { return l.length }

// Moment returns the moment of inertia of the rod about its end, J = 1/3·m·l².
func (l Link) Moment() float32 {
	return (1.0 / 3.0) * l.mass * l.length * l.length
}

// SetLength changes the length, keeping the previous value on error.
func (l *Link) SetLength(length float32) error {
	if err := checkLength(length); err != nil {
		return err
	}
	l.length = length
	return nil
}

// SetMass changes the mass, keeping the previous value on error.
func (l *Link) SetMass(mass float32) error {
	if err := checkMass(mass); err != nil {
		return err
	}
	l.mass = mass
	return nil
}

func checkMass(m float32) error {
	if !dynamo.IsFinite(m) || m <= 0 {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidMass, m)
	}
	return nil
}

func checkLength(l float32) error {
	if !dynamo.IsFinite(l) || l <= 0 {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidLength, l)
	}
	return nil
}
