// Package delivery validates requested delivery slots against the service
// window and the minimum lead time.
package delivery

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// ErrSlotUnavailable is returned for every slot rejection. The lead-time
// threshold must never be disclosed to the caller.
var ErrSlotUnavailable = errors.New("time slot is not available")

type SlotConfig struct {
	StartHour    int
	EndHour      int
	MinLeadHours int
}

func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		StartHour:    7,
		EndHour:      19,
		MinLeadHours: 3,
	}
}

var (
	slotTimeRe = regexp.MustCompile(`^(\d{2}):00$`)
	slotDateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

type SlotValidator struct {
	cfg SlotConfig
	now func() time.Time
}

func NewSlotValidator(cfg SlotConfig) *SlotValidator {
	return &SlotValidator{
		cfg: cfg,
		now: time.Now,
	}
}

// Validate checks that the slot is on the hour, inside [StartHour, EndHour],
// and at least MinLeadHours ahead of now. All failures collapse into the
// same ErrSlotUnavailable.
func (v *SlotValidator) Validate(date, hhmm string) error {
	hour, ok := parseSlotHour(hhmm)
	if !ok {
		return ErrSlotUnavailable
	}
	if hour < v.cfg.StartHour || hour > v.cfg.EndHour {
		return ErrSlotUnavailable
	}

	slot, ok := parseSlotDateTime(date, hour)
	if !ok {
		return ErrSlotUnavailable
	}

	minTime := v.now().Add(time.Duration(v.cfg.MinLeadHours) * time.Hour)
	if slot.Before(minTime) {
		return ErrSlotUnavailable
	}
	return nil
}

func parseSlotHour(hhmm string) (int, bool) {
	m := slotTimeRe.FindStringSubmatch(hhmm)
	if m == nil {
		return 0, false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return hour, true
}

func parseSlotDateTime(date string, hour int) (time.Time, bool) {
	m := slotDateRe.FindStringSubmatch(date)
	if m == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.Local), true
}
