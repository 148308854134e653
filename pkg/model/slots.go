package model

import "fmt"

// DateLayout is the calendar-date wire format for bookings and availability.
const DateLayout = "2006-01-02"

const (
	slotOpenHour  = 11
	slotCloseHour = 21
	slotStepMin   = 30
)

// slotGrid is the fixed universe of reservation start times for every date:
// 11:00 through 21:30 in 30-minute steps, 22 entries.
var slotGrid = buildSlotGrid()

var slotSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(slotGrid))
	for _, t := range slotGrid {
		set[t] = struct{}{}
	}
	return set
}()

func buildSlotGrid() []string {
	var grid []string
	for hour := slotOpenHour; hour <= slotCloseHour; hour++ {
		for minute := 0; minute < 60; minute += slotStepMin {
			grid = append(grid, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return grid
}

// SlotGrid returns the ordered slot times. Callers get a copy; the grid is
// immutable.
func SlotGrid() []string {
	grid := make([]string, len(slotGrid))
	copy(grid, slotGrid)
	return grid
}

// SlotCount is the number of reservation times per date.
func SlotCount() int {
	return len(slotGrid)
}

// IsSlotTime reports whether t is one of the grid times.
func IsSlotTime(t string) bool {
	_, ok := slotSet[t]
	return ok
}
