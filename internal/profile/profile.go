package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when no profile exists for an id.
var ErrNotFound = errors.New("profile not found")

// ErrNilProfile is returned when a nil profile is passed to Add or Update.
var ErrNilProfile = errors.New("profile is nil")

// ErrValidation is the base error for malformed or semantically invalid
// input. Callers match it with errors.Is; the wrapped message names the
// offending field.
var ErrValidation = errors.New("invalid profile data")

// DateLayout is the textual format for dates of birth.
const DateLayout = "2006-01-02"

type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

// ParseSex maps a raw string onto a known Sex value.
func ParseSex(raw string) (Sex, error) {
	switch Sex(strings.ToUpper(strings.TrimSpace(raw))) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	}
	return "", fmt.Errorf("%w: unknown sex %q", ErrValidation, raw)
}

type UnitSystem string

const (
	UnitMetric   UnitSystem = "METRIC"
	UnitImperial UnitSystem = "IMPERIAL"
)

// ParseUnitSystem maps a raw string onto a known UnitSystem. An empty
// string selects the METRIC default.
func ParseUnitSystem(raw string) (UnitSystem, error) {
	switch UnitSystem(strings.ToUpper(strings.TrimSpace(raw))) {
	case "":
		return UnitMetric, nil
	case UnitMetric:
		return UnitMetric, nil
	case UnitImperial:
		return UnitImperial, nil
	}
	return "", fmt.Errorf("%w: unknown unit system %q", ErrValidation, raw)
}

// Profile is the persisted record of one person's demographic and physical
// attributes. Instances are treated as immutable snapshots; an update
// produces a new snapshot stored under the same id.
type Profile struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Age         int        `json:"age"`
	Sex         Sex        `json:"sex"`
	DateOfBirth time.Time  `json:"date_of_birth"`
	Height      float64    `json:"height"`
	Weight      float64    `json:"weight"`
	Units       UnitSystem `json:"unit_system"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// New validates p and fills defaults: the unit system falls back to METRIC
// and a zero age is derived from the date of birth. Every profile handed to
// the repository goes through here first.
func New(p Profile) (Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Profile{}, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	switch p.Units {
	case "":
		p.Units = UnitMetric
	case UnitMetric, UnitImperial:
	default:
		return Profile{}, fmt.Errorf("%w: unknown unit system %q", ErrValidation, p.Units)
	}
	if p.Age == 0 && !p.DateOfBirth.IsZero() {
		p.Age = AgeAt(p.DateOfBirth, time.Now())
	}
	return p, nil
}

// AgeAt returns the whole years elapsed between dob and now, adjusted for
// whether the birthday has occurred yet this year.
func AgeAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if dob.AddDate(years, 0, 0).After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// RawInput is the unvalidated, string-typed update payload supplied by the
// presentation layer. Units may be empty, selecting the METRIC default;
// every other field is parsed and validated by Service.UpdateUser.
type RawInput struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Height      string `json:"height"`
	Weight      string `json:"weight"`
	Sex         string `json:"sex"`
	Units       string `json:"unit_system"`
}
