package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSex(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		s, err := ParseSex("MALE")
		assert.NoError(t, err)
		assert.Equal(t, SexMale, s)

		s, err = ParseSex(" female ")
		assert.NoError(t, err)
		assert.Equal(t, SexFemale, s)
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := ParseSex("OTHER")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty value", func(t *testing.T) {
		_, err := ParseSex("")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestParseUnitSystem(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		u, err := ParseUnitSystem("METRIC")
		assert.NoError(t, err)
		assert.Equal(t, UnitMetric, u)

		u, err = ParseUnitSystem("imperial")
		assert.NoError(t, err)
		assert.Equal(t, UnitImperial, u)
	})

	t.Run("empty selects metric default", func(t *testing.T) {
		u, err := ParseUnitSystem("")
		assert.NoError(t, err)
		assert.Equal(t, UnitMetric, u)
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := ParseUnitSystem("NAUTICAL")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAgeAt(t *testing.T) {
	dob := time.Date(1999, 7, 22, 0, 0, 0, 0, time.UTC)

	t.Run("birthday already passed this year", func(t *testing.T) {
		now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 26, AgeAt(dob, now))
	})

	t.Run("birthday not yet reached this year", func(t *testing.T) {
		now := time.Date(2025, 7, 21, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 25, AgeAt(dob, now))
	})

	t.Run("on the birthday", func(t *testing.T) {
		now := time.Date(2025, 7, 22, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 26, AgeAt(dob, now))
	})

	t.Run("dob in the future clamps to zero", func(t *testing.T) {
		now := time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 0, AgeAt(dob, now))
	})
}

func TestNew(t *testing.T) {
	base := Profile{
		ID:          1,
		Name:        "John Doe",
		Age:         25,
		Sex:         SexMale,
		DateOfBirth: time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC),
		Height:      180,
		Weight:      70,
		Units:       UnitMetric,
	}

	t.Run("valid profile passes through", func(t *testing.T) {
		p, err := New(base)
		assert.NoError(t, err)
		assert.Equal(t, base, p)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		invalid := base
		invalid.Name = "   "
		_, err := New(invalid)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing unit system defaults to metric", func(t *testing.T) {
		p := base
		p.Units = ""
		got, err := New(p)
		assert.NoError(t, err)
		assert.Equal(t, UnitMetric, got.Units)
	})

	t.Run("unknown unit system rejected", func(t *testing.T) {
		p := base
		p.Units = "NAUTICAL"
		_, err := New(p)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("zero age derived from date of birth", func(t *testing.T) {
		p := base
		p.Age = 0
		got, err := New(p)
		assert.NoError(t, err)
		assert.Equal(t, AgeAt(p.DateOfBirth, time.Now()), got.Age)
	})
}
