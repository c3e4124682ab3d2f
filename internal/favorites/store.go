// Package favorites keeps the session-local favorite state for listings
// and applies toggles optimistically, reconciling with the backend's
// write responses.
package favorites

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/mkhalil/rent-finder/internal/api"
	"github.com/mkhalil/rent-finder/internal/property"
)

// Service is the favorites surface of the backend API.
type Service interface {
	AddFavorite(ctx context.Context, propertyID int64) error
	RemoveFavorite(ctx context.Context, propertyID int64) error
	IsFavorite(ctx context.Context, propertyID int64) (bool, error)
}

// ErrInFlight is returned when a toggle for the same property has not
// settled yet. The first toggle wins; the caller should not queue more.
var ErrInFlight = errors.New("a favorite update for this property is already in progress")

// Reason classifies a failed toggle for presentation.
type Reason int

const (
	ReasonGeneric Reason = iota
	ReasonUnauthenticated
	ReasonServer
)

// ToggleError reports a toggle that was rolled back.
type ToggleError struct {
	PropertyID int64
	Reason     Reason
	Err        error
}

func (e *ToggleError) Error() string {
	switch e.Reason {
	case ReasonUnauthenticated:
		return "please sign in to manage favorites"
	case ReasonServer:
		return "favorites are unavailable right now; please try again"
	}
	return "could not update favorites"
}

func (e *ToggleError) Unwrap() error { return e.Err }

// Store tracks one shared record per property so that every view
// holding the record sees favorite changes at the same moment.
type Store struct {
	svc Service

	mu       sync.Mutex
	records  map[int64]*property.Property
	inFlight map[int64]bool
}

// NewStore creates an empty store backed by svc.
func NewStore(svc Service) *Store {
	return &Store{
		svc:      svc,
		records:  make(map[int64]*property.Property),
		inFlight: make(map[int64]bool),
	}
}

// Record registers p and returns the shared record for its id. Fresh
// data replaces the tracked record's fields, except that the favorite
// flag of a record with an unsettled toggle is preserved so a refetch
// cannot clobber the optimistic state.
func (s *Store) Record(p *property.Property) *property.Property {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[p.ID]
	if !ok {
		s.records[p.ID] = p
		return p
	}

	fav := existing.IsFavorite
	*existing = *p
	if s.inFlight[p.ID] {
		existing.IsFavorite = fav
	}
	return existing
}

// Refresh queries the backend for the property's membership and updates
// the shared record, unless a toggle is in flight.
func (s *Store) Refresh(ctx context.Context, p *property.Property) error {
	rec := s.Record(p)

	member, err := s.svc.IsFavorite(ctx, rec.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inFlight[rec.ID] {
		rec.IsFavorite = member
	}
	return nil
}

// Toggle flips the property's favorite state optimistically, issues the
// matching backend write, and rolls the flag back if the write truly
// failed. At most one toggle per property may be in flight.
func (s *Store) Toggle(ctx context.Context, p *property.Property) error {
	rec := s.Record(p)

	s.mu.Lock()
	if s.inFlight[rec.ID] {
		s.mu.Unlock()
		return ErrInFlight
	}
	s.inFlight[rec.ID] = true
	removing := rec.IsFavorite
	rec.IsFavorite = !removing
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, rec.ID)
		s.mu.Unlock()
	}()

	var err error
	if removing {
		err = s.svc.RemoveFavorite(ctx, rec.ID)
	} else {
		err = s.svc.AddFavorite(ctx, rec.ID)
	}

	if err = reconcile(removing, err); err == nil {
		return nil
	}

	s.mu.Lock()
	rec.IsFavorite = removing
	s.mu.Unlock()
	return classify(rec.ID, err)
}

// reconcile decides whether a write error actually means the toggle did
// not land. The backend answers favorite writes with plain text bodies,
// which surface here as decode failures carrying the 2xx status; those
// writes landed. Removing something already absent is also settled
// state. An error with no HTTP status at all is treated as applied and
// left for the next refresh to straighten out.
func reconcile(removing bool, err error) error {
	if err == nil {
		return nil
	}
	switch status := api.StatusOf(err); {
	case status == http.StatusOK:
		return nil
	case status == 0:
		return nil
	case removing && status == http.StatusNotFound:
		return nil
	}
	return err
}

// classify maps a genuine failure to its presentation reason.
func classify(propertyID int64, err error) *ToggleError {
	reason := ReasonGeneric
	switch status := api.StatusOf(err); {
	case status == http.StatusUnauthorized:
		reason = ReasonUnauthenticated
	case status >= http.StatusInternalServerError:
		reason = ReasonServer
	}
	return &ToggleError{PropertyID: propertyID, Reason: reason, Err: err}
}
