package models

import (
	"fmt"
	"strings"

	dErrors "coldcheck/pkg/domain-errors"
)

// TimeSlot is one of the four fixed overnight check times.
type TimeSlot string

const (
	Slot0000 TimeSlot = "00:00"
	Slot0200 TimeSlot = "02:00"
	Slot0400 TimeSlot = "04:00"
	Slot0600 TimeSlot = "06:00"
)

// timeSlotOrder is the presentation order for grouped results.
var timeSlotOrder = []TimeSlot{Slot0000, Slot0200, Slot0400, Slot0600}

var timeSlotLabels = map[TimeSlot]string{
	Slot0000: "12:00 AM",
	Slot0200: "02:00 AM",
	Slot0400: "04:00 AM",
	Slot0600: "06:00 AM",
}

// legacySlots maps the hour-suffixed values earlier clients submitted.
var legacySlots = map[string]TimeSlot{
	"12am": Slot0000,
	"00am": Slot0000,
	"2am":  Slot0200,
	"02am": Slot0200,
	"4am":  Slot0400,
	"04am": Slot0400,
	"6am":  Slot0600,
	"06am": Slot0600,
}

// TimeSlots returns the fixed slots in presentation order.
func TimeSlots() []TimeSlot {
	return append([]TimeSlot(nil), timeSlotOrder...)
}

// ParseTimeSlot accepts canonical ("02:00") and legacy ("2am") spellings.
func ParseTimeSlot(s string) (TimeSlot, error) {
	s = strings.TrimSpace(s)
	slot := TimeSlot(s)
	if slot.IsValid() {
		return slot, nil
	}
	if legacy, ok := legacySlots[strings.ToLower(s)]; ok {
		return legacy, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown time slot %q: expected one of 00:00, 02:00, 04:00, 06:00", s))
}

func (s TimeSlot) IsValid() bool {
	_, ok := timeSlotLabels[s]
	return ok
}

// Label renders the slot for exports, e.g. "12:00 AM".
func (s TimeSlot) Label() string {
	if label, ok := timeSlotLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s TimeSlot) String() string {
	return string(s)
}
