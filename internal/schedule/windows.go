package schedule

import (
	"time"

	"github.com/medtrack/diabetes-monitor/internal/domain"
)

// Period names the measurement window a timestamp falls into.
type Period string

const (
	PeriodMorning     Period = "morning"
	PeriodNoon        Period = "noon"
	PeriodAfternoon   Period = "afternoon"
	PeriodEvening     Period = "evening"
	PeriodNight       Period = "night"
	PeriodOutOfWindow Period = "out_of_window"
)

// mealCutoffHour splits fasting from post-meal measurements.
const mealCutoffHour = 11

// Window is a fixed wall-clock interval with inclusive bounds.
type Window struct {
	Period     Period
	StartHour  int
	StartMin   int
	EndHour    int
	EndMin     int
}

// Windows are the standard measurement times, in matching order.
var Windows = []Window{
	{PeriodMorning, 7, 0, 8, 0},
	{PeriodNoon, 12, 0, 13, 0},
	{PeriodAfternoon, 15, 0, 16, 0},
	{PeriodEvening, 18, 0, 19, 0},
	{PeriodNight, 22, 0, 23, 0},
}

// contains checks the timestamp against the window at second granularity,
// both bounds inclusive.
func (w Window) contains(t time.Time) bool {
	sec := t.Hour()*3600 + t.Minute()*60 + t.Second()
	return sec >= w.StartHour*3600+w.StartMin*60 && sec <= w.EndHour*3600+w.EndMin*60
}

// Classify returns the first window containing t, or PeriodOutOfWindow with
// valid=false when none matches.
func Classify(t time.Time) (Period, bool) {
	for _, w := range Windows {
		if w.contains(t) {
			return w.Period, true
		}
	}
	return PeriodOutOfWindow, false
}

// MealContextAt derives the meal context from the time of day. It is
// independent of window validity.
func MealContextAt(t time.Time) domain.MealContext {
	if t.Hour() < mealCutoffHour {
		return domain.MealContextFasting
	}
	return domain.MealContextPostMeal
}
