package scheduler

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"
	"vacation-manager/internal/models"
	"vacation-manager/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (c *countingSweeper) Sweep(ctx context.Context) (service.SweepResult, error) {
	c.calls.Add(1)
	if c.started != nil {
		c.started <- struct{}{}
	}
	if c.release != nil {
		<-c.release
	}
	return service.SweepResult{SweepID: "test", Sent: 1}, ctx.Err()
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func pref(supervisorID uint, enabled bool, times ...string) models.NotificationPreference {
	p := models.DefaultNotificationPreference(supervisorID)
	p.SMSEnabled = enabled
	p.SetTimes(times)
	return p
}

func TestSlotsFor(t *testing.T) {
	tests := []struct {
		name        string
		prefs       []models.NotificationPreference
		wantSlots   []Slot
		wantInvalid []string
	}{
		{
			name:      "no preferences uses default",
			prefs:     nil,
			wantSlots: []Slot{DefaultSlot},
		},
		{
			name:      "disabled preferences do not contribute",
			prefs:     []models.NotificationPreference{pref(1, false, "07:15")},
			wantSlots: []Slot{DefaultSlot},
		},
		{
			name: "distinct sorted times",
			prefs: []models.NotificationPreference{
				pref(1, true, "17:30", "08:00"),
				pref(2, true, "08:00:00", "12:05"),
				pref(3, false, "06:00"),
			},
			wantSlots: []Slot{{8, 0}, {12, 5}, {17, 30}},
		},
		{
			name:        "invalid entries reported",
			prefs:       []models.NotificationPreference{pref(1, true, "25:00", "10:00")},
			wantSlots:   []Slot{{10, 0}},
			wantInvalid: []string{"25:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, invalid := SlotsFor(tt.prefs)
			assert.Equal(t, tt.wantSlots, slots)
			assert.Equal(t, tt.wantInvalid, invalid)
		})
	}
}

func TestNextRun(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		slot Slot
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2024, time.June, 10, 7, 0, 0, 0, chicago),
			slot: Slot{9, 0},
			want: time.Date(2024, time.June, 10, 9, 0, 0, 0, chicago),
		},
		{
			name: "already passed",
			now:  time.Date(2024, time.June, 10, 9, 30, 0, 0, chicago),
			slot: Slot{9, 0},
			want: time.Date(2024, time.June, 11, 9, 0, 0, 0, chicago),
		},
		{
			name: "exactly now goes to tomorrow",
			now:  time.Date(2024, time.June, 10, 9, 0, 0, 0, chicago),
			slot: Slot{9, 0},
			want: time.Date(2024, time.June, 11, 9, 0, 0, 0, chicago),
		},
		{
			name: "now given in another zone",
			now:  time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC), // 10:00 in Chicago
			slot: Slot{9, 0},
			want: time.Date(2024, time.June, 11, 9, 0, 0, 0, chicago),
		},
		{
			name: "across daylight saving start",
			now:  time.Date(2024, time.March, 9, 10, 0, 0, 0, chicago),
			slot: Slot{9, 0},
			want: time.Date(2024, time.March, 10, 9, 0, 0, 0, chicago),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextRun(tt.slot, tt.now, chicago)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
			assert.Equal(t, tt.slot.Hour, got.In(chicago).Hour())
		})
	}
}

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot(" 07:05:59 ")
	require.NoError(t, err)
	assert.Equal(t, Slot{7, 5}, slot)
	assert.Equal(t, "07:05", slot.String())

	_, err = ParseSlot("7pm")
	assert.Error(t, err)
}

func TestRescheduleReplacesTimers(t *testing.T) {
	s := New(&countingSweeper{}, time.UTC, quietLogger())
	defer s.Stop()

	s.Reschedule([]models.NotificationPreference{pref(1, true, "08:00", "17:30"), pref(2, true, "08:00")})
	assert.Equal(t, []Slot{{8, 0}, {17, 30}}, s.Slots())
	assert.Equal(t, []string{"08:00", "17:30"}, s.SlotLabels())

	s.Reschedule([]models.NotificationPreference{pref(1, false, "08:00")})
	assert.Equal(t, []Slot{DefaultSlot}, s.Slots())

	s.Stop()
	assert.Empty(t, s.Slots())
}

func TestFireRunsSweepAndRearms(t *testing.T) {
	sweeper := &countingSweeper{}
	s := New(sweeper, time.UTC, quietLogger())
	defer s.Stop()

	s.Reschedule([]models.NotificationPreference{pref(1, true, "08:00")})
	s.fire(Slot{8, 0}, s.generation, time.Now())

	assert.Equal(t, int32(1), sweeper.calls.Load())
	assert.Equal(t, []Slot{{8, 0}}, s.Slots())
}

func TestStaleFiringIsIgnored(t *testing.T) {
	sweeper := &countingSweeper{}
	s := New(sweeper, time.UTC, quietLogger())
	defer s.Stop()

	s.Reschedule([]models.NotificationPreference{pref(1, true, "08:00")})
	stale := s.generation
	s.Reschedule([]models.NotificationPreference{pref(1, true, "09:30")})

	s.fire(Slot{8, 0}, stale, time.Now())
	assert.Equal(t, int32(0), sweeper.calls.Load())
	assert.Equal(t, []Slot{{9, 30}}, s.Slots())

	s.Stop()
	s.fire(Slot{9, 30}, s.generation, time.Now())
	assert.Equal(t, int32(0), sweeper.calls.Load())
}

func TestSweepsNeverOverlap(t *testing.T) {
	sweeper := &countingSweeper{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := New(sweeper, time.UTC, quietLogger())

	done := make(chan bool)
	go func() {
		_, ran, _ := s.RunNow(context.Background())
		done <- ran
	}()
	<-sweeper.started

	_, ran, err := s.RunNow(context.Background())
	assert.False(t, ran)
	assert.NoError(t, err)

	close(sweeper.release)
	assert.True(t, <-done)
	assert.Equal(t, int32(1), sweeper.calls.Load())
}

func TestStopDoesNotInterruptRunningSweep(t *testing.T) {
	sweeper := &countingSweeper{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := New(sweeper, time.UTC, quietLogger())
	s.Reschedule(nil)

	type outcome struct {
		result service.SweepResult
		err    error
	}
	done := make(chan outcome)
	go func() {
		result, _, err := s.RunNow(context.Background())
		done <- outcome{result, err}
	}()
	<-sweeper.started

	s.Stop()
	close(sweeper.release)

	got := <-done
	assert.NoError(t, got.err)
	assert.Equal(t, 1, got.result.Sent)
}

func TestTimerFiresSweep(t *testing.T) {
	sweeper := &countingSweeper{started: make(chan struct{}, 1)}
	s := New(sweeper, time.UTC, quietLogger())
	defer s.Stop()

	fixed := time.Date(2024, time.June, 10, 8, 59, 59, 950_000_000, time.UTC)
	s.now = func() time.Time { return fixed }
	s.Reschedule([]models.NotificationPreference{pref(1, true, "09:00")})

	select {
	case <-sweeper.started:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}
