package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"vacation-manager/internal/metrics"
	"vacation-manager/internal/models"
	"vacation-manager/internal/service"

	"github.com/sirupsen/logrus"
)

// Sweeper runs one reminder sweep.
type Sweeper interface {
	Sweep(ctx context.Context) (service.SweepResult, error)
}

// Slot - a daily wall-clock time
type Slot struct {
	Hour   int
	Minute int
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// DefaultSlot is used when no enabled preference defines a time.
var DefaultSlot = Slot{Hour: 9, Minute: 0}

// NotificationScheduler keeps one daily timer per distinct notification time.
// Sweeps never overlap: a timer that fires while a sweep is running is skipped.
type NotificationScheduler struct {
	sweeper  Sweeper
	location *time.Location
	logger   *logrus.Logger
	now      func() time.Time

	mu         sync.Mutex
	timers     map[Slot]*time.Timer
	generation uint64
	stopped    bool

	sweepMu sync.Mutex
}

func New(sweeper Sweeper, location *time.Location, logger *logrus.Logger) *NotificationScheduler {
	if location == nil {
		location = time.Local
	}
	return &NotificationScheduler{
		sweeper:  sweeper,
		location: location,
		logger:   logger,
		now:      time.Now,
		timers:   map[Slot]*time.Timer{},
	}
}

// Reschedule cancels every timer and registers new ones for the given preferences.
// A sweep already in flight is left to finish.
func (s *NotificationScheduler) Reschedule(prefs []models.NotificationPreference) {
	slots, invalid := SlotsFor(prefs)
	for _, raw := range invalid {
		s.logger.WithField("time", raw).Warn("Ignoring invalid notification time")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimersLocked()
	s.generation++
	s.stopped = false

	now := s.now()
	for _, slot := range slots {
		s.armLocked(slot, s.generation, now)
	}
	metrics.ScheduledSlots.Set(float64(len(slots)))

	s.logger.WithFields(logrus.Fields{
		"slots":    strings.Join(labels(slots), ","),
		"timezone": s.location.String(),
	}).Info("Notification timers rescheduled")
}

// Stop cancels all timers. A running sweep is not interrupted.
func (s *NotificationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimersLocked()
	s.generation++
	s.stopped = true
	metrics.ScheduledSlots.Set(0)
	s.logger.Info("Notification scheduler stopped")
}

// Slots returns the registered times in ascending order.
func (s *NotificationScheduler) Slots() []Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]Slot, 0, len(s.timers))
	for slot := range s.timers {
		slots = append(slots, slot)
	}
	sortSlots(slots)
	return slots
}

func (s *NotificationScheduler) SlotLabels() []string {
	return labels(s.Slots())
}

// RunNow performs a sweep immediately unless one is already running.
func (s *NotificationScheduler) RunNow(ctx context.Context) (service.SweepResult, bool, error) {
	if !s.sweepMu.TryLock() {
		return service.SweepResult{}, false, nil
	}
	defer s.sweepMu.Unlock()

	result, err := s.sweeper.Sweep(ctx)
	return result, true, err
}

// NextRun returns the first occurrence of slot strictly after now, in loc.
func NextRun(slot Slot, now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), slot.Hour, slot.Minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, slot.Hour, slot.Minute, 0, 0, loc)
	}
	return next
}

// SlotsFor collects the distinct times of enabled preferences. Unparseable entries are returned separately.
func SlotsFor(prefs []models.NotificationPreference) ([]Slot, []string) {
	seen := map[Slot]struct{}{}
	var invalid []string

	for i := range prefs {
		if !prefs[i].SMSEnabled {
			continue
		}
		for _, raw := range prefs[i].Times() {
			slot, err := ParseSlot(raw)
			if err != nil {
				invalid = append(invalid, raw)
				continue
			}
			seen[slot] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return []Slot{DefaultSlot}, invalid
	}

	slots := make([]Slot, 0, len(seen))
	for slot := range seen {
		slots = append(slots, slot)
	}
	sortSlots(slots)
	return slots, invalid
}

// ParseSlot accepts "HH:MM" and "HH:MM:SS"; seconds are dropped.
func ParseSlot(value string) (Slot, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return Slot{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return Slot{}, fmt.Errorf("invalid clock time %q", value)
}

// armLocked registers the first occurrence of slot strictly after the given instant.
func (s *NotificationScheduler) armLocked(slot Slot, generation uint64, after time.Time) {
	next := NextRun(slot, after, s.location)
	s.timers[slot] = time.AfterFunc(next.Sub(s.now()), func() {
		s.fire(slot, generation, next)
	})

	s.logger.WithFields(logrus.Fields{
		"slot":     slot.String(),
		"next_run": next.Format(time.RFC3339),
	}).Debug("Notification timer armed")
}

func (s *NotificationScheduler) cancelTimersLocked() {
	for slot, timer := range s.timers {
		timer.Stop()
		delete(s.timers, slot)
	}
}

func (s *NotificationScheduler) fire(slot Slot, generation uint64, scheduledAt time.Time) {
	if !s.current(generation) {
		return
	}

	log := s.logger.WithField("slot", slot.String())
	result, ran, err := s.RunNow(context.Background())
	switch {
	case !ran:
		log.Warn("Previous sweep still running, skipping this firing")
	case err != nil:
		log.WithError(err).Error("Reminder sweep finished with errors")
	default:
		log.WithFields(logrus.Fields{
			"sweep_id": result.SweepID,
			"sent":     result.Sent,
			"failed":   result.Failed,
		}).Debug("Scheduled sweep done")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation == s.generation && !s.stopped {
		// the wall clock may lag the monotonic timer; never re-arm for the same occurrence
		after := s.now()
		if after.Before(scheduledAt) {
			after = scheduledAt
		}
		s.armLocked(slot, generation, after)
	}
}

func (s *NotificationScheduler) current(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generation == s.generation && !s.stopped
}

func sortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Hour != slots[j].Hour {
			return slots[i].Hour < slots[j].Hour
		}
		return slots[i].Minute < slots[j].Minute
	})
}

func labels(slots []Slot) []string {
	result := make([]string, 0, len(slots))
	for _, slot := range slots {
		result = append(result, slot.String())
	}
	return result
}
