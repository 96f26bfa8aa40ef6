package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Service provides validated CRUD plus session state over the repository.
// The current session is the single active profile; it lives in the service
// instance, guarded by a mutex because handlers run concurrently.
type Service struct {
	repo Repository

	mu      sync.Mutex
	current *Profile
}

// NewService creates a new profile service with no active session.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add validates and stores p, overwriting any existing entry with the same
// id. Re-adding the same profile is a no-op upsert, not an error. Defaults
// applied by New (METRIC units, derived age) are written back into p.
func (s *Service) Add(ctx context.Context, p *Profile) error {
	if p == nil {
		return ErrNilProfile
	}
	validated, err := New(*p)
	if err != nil {
		return err
	}
	*p = validated
	return s.repo.Save(ctx, p)
}

// GetByID returns the profile for id, or nil when no such profile exists.
// A missing id is not an error.
func (s *Service) GetByID(ctx context.Context, id int64) (*Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Update replaces the stored profile for p's id. Full-object replacement
// shares Add's upsert semantics.
func (s *Service) Update(ctx context.Context, p *Profile) error {
	return s.Add(ctx, p)
}

// ListAll returns every stored profile.
func (s *Service) ListAll(ctx context.Context) ([]Profile, error) {
	return s.repo.FindAll(ctx)
}

// OpenSession makes the profile with id the current session and returns it.
// An unknown id returns nil and leaves any existing session unchanged.
func (s *Service) OpenSession(ctx context.Context, id int64) (*Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.mu.Lock()
	s.current = &p
	s.mu.Unlock()
	snapshot := p
	return &snapshot, nil
}

// CurrentSession returns a copy of the active profile, or nil when no
// session is open.
func (s *Service) CurrentSession() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	snapshot := *s.current
	return &snapshot
}

// CloseSession clears the current session unconditionally.
func (s *Service) CloseSession() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// UpdateUser parses and validates raw presentation-layer input, recomputes
// the age from the parsed date of birth, and persists a new snapshot under
// id. The stored profile is untouched when any field fails validation.
func (s *Service) UpdateUser(ctx context.Context, id int64, in RawInput) (Profile, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return Profile{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Profile{}, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	dob, err := time.Parse(DateLayout, strings.TrimSpace(in.DateOfBirth))
	if err != nil {
		return Profile{}, fmt.Errorf("%w: date of birth must be a valid %s date", ErrValidation, DateLayout)
	}
	height, err := parsePositive("height", in.Height)
	if err != nil {
		return Profile{}, err
	}
	weight, err := parsePositive("weight", in.Weight)
	if err != nil {
		return Profile{}, err
	}
	sex, err := ParseSex(in.Sex)
	if err != nil {
		return Profile{}, err
	}
	units, err := ParseUnitSystem(in.Units)
	if err != nil {
		return Profile{}, err
	}

	updated := Profile{
		ID:          id,
		Name:        name,
		Age:         AgeAt(dob, time.Now()),
		Sex:         sex,
		DateOfBirth: dob,
		Height:      height,
		Weight:      weight,
		Units:       units,
	}
	if err := s.repo.Save(ctx, &updated); err != nil {
		return Profile{}, err
	}
	return updated, nil
}

func parsePositive(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrValidation, field)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrValidation, field)
	}
	return v, nil
}
