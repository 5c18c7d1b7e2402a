package planner

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Weekdays are the fixed keys of a weekly schedule, in order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Allocation maps topics to duration labels such as "0.67h". Insertion order is kept
// so the JSON form lists topics in plan order.
type Allocation struct {
	topics []string
	hours  map[string]string
}

func (a *Allocation) set(topic, label string) {
	if a.hours == nil {
		a.hours = make(map[string]string)
	}
	if _, ok := a.hours[topic]; !ok {
		a.topics = append(a.topics, topic)
	}
	a.hours[topic] = label
}

// Len reports the number of distinct topics.
func (a Allocation) Len() int { return len(a.topics) }

// Topics returns the allocated topics in order.
func (a Allocation) Topics() []string { return append([]string(nil), a.topics...) }

// Get returns the label for topic.
func (a Allocation) Get(topic string) (string, bool) {
	label, ok := a.hours[topic]
	return label, ok
}

// Map returns a copy as a plain map.
func (a Allocation) Map() map[string]string {
	out := make(map[string]string, len(a.hours))
	for k, v := range a.hours {
		out[k] = v
	}
	return out
}

func (a Allocation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, topic := range a.topics {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONPair(&buf, topic, a.hours[topic]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WeeklySchedule repeats one allocation under every weekday.
type WeeklySchedule struct {
	perDay Allocation
}

// Days returns the weekday keys, or nothing when there is nothing to schedule.
func (w WeeklySchedule) Days() []string {
	if w.perDay.Len() == 0 {
		return nil
	}
	return append([]string(nil), Weekdays...)
}

// Day returns the allocation for a weekday.
func (w WeeklySchedule) Day(name string) (Allocation, bool) {
	if w.perDay.Len() == 0 {
		return Allocation{}, false
	}
	for _, d := range Weekdays {
		if d == name {
			return w.perDay, true
		}
	}
	return Allocation{}, false
}

func (w WeeklySchedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range w.Days() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONPair(&buf, day, w.perDay); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONPair(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// DailyPlan splits hoursPerDay evenly across topics, rounding each share to 2 decimals.
func DailyPlan(topics []string, hoursPerDay float64) Allocation {
	var out Allocation
	if len(topics) == 0 {
		return out
	}
	label := hoursLabel(round2(hoursPerDay / float64(len(topics))))
	for _, t := range topics {
		out.set(t, label)
	}
	return out
}

// WeeklyPlan spreads weeklyHours over seven days and then splits each day evenly across
// topics. Every day carries the same allocation.
func WeeklyPlan(topics []string, weeklyHours float64) WeeklySchedule {
	if len(topics) == 0 {
		return WeeklySchedule{}
	}
	return WeeklySchedule{perDay: DailyPlan(topics, round2(weeklyHours/float64(len(Weekdays))))}
}

// round2 rounds on the exact decimal value of v, so 0.715 (stored as 0.71499...) gives 0.71.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// hoursLabel keeps one decimal on whole numbers ("2.0h") to match existing clients.
func hoursLabel(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + "h"
}
