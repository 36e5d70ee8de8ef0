package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
)

var (
	// ErrNotFound means no record exists for the given id.
	ErrNotFound = errors.New("record not found")
	// ErrSessionClosed means the record already left In-Progress and
	// cannot be signed out again.
	ErrSessionClosed = errors.New("session already closed")
)

// Store is the persistence surface the service needs. *Repository is the
// Postgres implementation; tests supply in-memory mocks.
type Store interface {
	Create(ctx context.Context, rec Record) (int64, error)
	Get(ctx context.Context, id int64) (Record, error)
	CompleteSignOut(ctx context.Context, id int64, signOut time.Time, totalHours, status string) error
	UpdateResolution(ctx context.Context, id int64, status string, notes *string) error
	ListByStatus(ctx context.Context, status string) ([]Record, error)
	ListAll(ctx context.Context) ([]Record, error)
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

// Cache is an optional byte cache for the activity feed.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const (
	activityLimit    = 10
	activityCacheKey = "classtrack:activities"
	activityTimeFmt  = "Jan 02, 03:04 PM"
	dateKeyFmt       = "2006-01-02"
)

// Service implements the attendance rules over a Store.
type Service struct {
	store           Store
	cache           Cache
	cacheTTL        time.Duration
	loc             *time.Location
	presenceMinutes int
	nowFn           func() time.Time
}

// NewService creates a service. presenceMinutes is the minimum whole-minute
// presence for a session to count as Present (sessions of an hour or more
// always qualify). loc is the civil zone timestamps are captured in.
func NewService(store Store, presenceMinutes int, loc *time.Location) *Service {
	if presenceMinutes <= 0 {
		presenceMinutes = 10
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:           store,
		loc:             loc,
		presenceMinutes: presenceMinutes,
		nowFn:           time.Now,
	}
}

// WithCache attaches an activity-feed cache.
func (s *Service) WithCache(cache Cache, ttl time.Duration) *Service {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// now returns the current wall clock in the configured zone with the
// offset stripped, so stored values are zone-naive.
func (s *Service) now() time.Time {
	t := s.nowFn().In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// SignIn opens a session and returns the new record id. Multiple open
// sessions for the same name are allowed.
func (s *Service) SignIn(ctx context.Context, name string) (int64, error) {
	if name == "" {
		name = DefaultStudentName
	}
	id, err := s.store.Create(ctx, Record{
		StudentName: name,
		SignIn:      s.now(),
		Status:      StatusInProgress,
	})
	if err != nil {
		return 0, err
	}
	s.dropActivityCache(ctx)
	return id, nil
}

// SignOut closes a session, computing total hours and the terminal status.
// A record that already left In-Progress (signed out, regularization,
// resolved) is rejected with ErrSessionClosed rather than recomputed.
func (s *Service) SignOut(ctx context.Context, id int64) (Record, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if rec.Status != StatusInProgress {
		return Record{}, ErrSessionClosed
	}

	signOut := s.now()
	hours, minutes := splitElapsed(signOut.Sub(rec.SignIn))
	total := fmt.Sprintf("%dh %dm", hours, minutes)

	status := StatusShortage
	if hours > 0 || minutes >= s.presenceMinutes {
		status = StatusPresent
	}

	if err := s.store.CompleteSignOut(ctx, id, signOut, total, status); err != nil {
		return Record{}, err
	}
	s.dropActivityCache(ctx)

	rec.SignOut = &signOut
	rec.TotalHours = &total
	rec.Status = status
	return rec, nil
}

// splitElapsed floors an elapsed duration into whole hours and the
// remaining whole minutes. Both come from the same whole-second count so
// the hour/minute split is never rounded independently.
func splitElapsed(d time.Duration) (hours, minutes int) {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	return secs / 3600, (secs % 3600) / 60
}

// Regularize files a retroactive attendance request for professor review.
func (s *Service) Regularize(ctx context.Context, name, date, reason string) (int64, error) {
	if name == "" {
		name = DefaultStudentName
	}
	notes := fmt.Sprintf("Date: %s | Reason: %s", date, reason)
	id, err := s.store.Create(ctx, Record{
		StudentName:   name,
		SignIn:        s.now(),
		Status:        StatusPending,
		Notes:         &notes,
		IsRegularized: true,
	})
	if err != nil {
		return 0, err
	}
	s.dropActivityCache(ctx)
	return id, nil
}

// Pending returns all regularization requests awaiting a decision.
func (s *Service) Pending(ctx context.Context) ([]Record, error) {
	return s.store.ListByStatus(ctx, StatusPending)
}

// Resolve applies the professor's decision. "Approved" marks the record
// Present and prefixes its notes; any other decision rejects it and leaves
// the notes untouched.
func (s *Service) Resolve(ctx context.Context, id int64, decision string) (Record, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if decision == "Approved" {
		rec.Status = StatusPresent
		prefixed := "Approved: "
		if rec.Notes != nil {
			prefixed += *rec.Notes
		}
		rec.Notes = &prefixed
		err = s.store.UpdateResolution(ctx, id, rec.Status, rec.Notes)
	} else {
		rec.Status = StatusRejected
		err = s.store.UpdateResolution(ctx, id, rec.Status, nil)
	}
	if err != nil {
		return Record{}, err
	}
	s.dropActivityCache(ctx)
	return rec, nil
}

// MonthSummary maps each calendar date (from sign_in) to a status. When a
// date has several records the one scanned last wins; the store scans in
// id order, so the newest record for a date takes precedence.
func (s *Service) MonthSummary(ctx context.Context) (map[string]string, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	summary := make(map[string]string, len(records))
	for _, rec := range records {
		summary[rec.SignIn.Format(dateKeyFmt)] = rec.Status
	}
	return summary, nil
}

// RecentActivity returns the ten most recent records as display entries,
// newest first. Served from cache when one is attached.
func (s *Service) RecentActivity(ctx context.Context) ([]Activity, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, activityCacheKey); err == nil && raw != nil {
			var cached []Activity
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	records, err := s.store.ListRecent(ctx, activityLimit)
	if err != nil {
		return nil, err
	}
	activities := make([]Activity, 0, len(records))
	for _, rec := range records {
		text := fmt.Sprintf("%s: Clocked %s", rec.StudentName, rec.Status)
		if rec.Status == StatusPending {
			text = fmt.Sprintf("%s: Regularization Pending", rec.StudentName)
		}
		activities = append(activities, Activity{
			ID:   rec.ID,
			Text: text,
			Time: rec.SignIn.Format(activityTimeFmt),
		})
	}

	if s.cache != nil {
		if raw, err := json.Marshal(activities); err == nil {
			if err := s.cache.Set(ctx, activityCacheKey, raw, s.cacheTTL); err != nil {
				log.Printf("activity cache set failed: %v", err)
			}
		}
	}
	return activities, nil
}

// PresentCount returns how many records are currently Present.
func (s *Service) PresentCount(ctx context.Context) (int, error) {
	return s.store.CountByStatus(ctx, StatusPresent)
}

func (s *Service) dropActivityCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, activityCacheKey); err != nil {
		log.Printf("activity cache invalidate failed: %v", err)
	}
}
