package task

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
	"unicode"
)

// Priority is the task priority. Priorities have a total order:
// LOW < MEDIUM < HIGH.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"

	// DefaultPriority is assigned when add omits prio.
	DefaultPriority = PriorityMedium
)

// ParsePriority validates a priority token. It reports false for any value
// outside the closed set.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

// Rank returns the position of p in the priority order, lowest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	}
	return 0
}

// Repeat is the task repeat interval.
type Repeat string

const (
	RepeatNone    Repeat = "NONE"
	RepeatDaily   Repeat = "DAILY"
	RepeatWeekly  Repeat = "WEEKLY"
	RepeatMonthly Repeat = "MONTHLY"

	// DefaultRepeat is assigned when add omits rep.
	DefaultRepeat = RepeatNone
)

// ParseRepeat validates a repeat token. It reports false for any value
// outside the closed set.
func ParseRepeat(s string) (Repeat, bool) {
	switch Repeat(s) {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return Repeat(s), true
	}
	return "", false
}

// ParseDone parses a boolean-like done value. Accepted spellings are
// True/true and False/false.
func ParseDone(s string) (bool, bool) {
	switch s {
	case "True", "true":
		return true, true
	case "False", "false":
		return false, true
	}
	return false, false
}

// FormatDone renders a done flag in the form the output protocol uses.
func FormatDone(done bool) string {
	if done {
		return "True"
	}
	return "False"
}

// Property names one of the nine task fields addressable by the list, mod,
// delete, and sort operations.
type Property string

const (
	PropName  Property = "name"
	PropType  Property = "type"
	PropDesc  Property = "desc"
	PropDue   Property = "due"
	PropRep   Property = "rep"
	PropPrio  Property = "prio"
	PropDone  Property = "done"
	PropCtime Property = "ctime"
	PropID    Property = "id"
)

// Properties lists every addressable property in header order.
var Properties = []Property{
	PropName, PropType, PropDesc, PropDue, PropRep,
	PropPrio, PropDone, PropCtime, PropID,
}

// ParseProperty validates a property name. It reports false for any name
// outside the closed set.
func ParseProperty(s string) (Property, bool) {
	for _, p := range Properties {
		if Property(s) == p {
			return p, true
		}
	}
	return "", false
}

// DueNone is the sentinel for a task without a due date.
const DueNone = "NONE"

// dueRe matches the DD-MM-YYYY wire format: 1-2 digit day and month,
// exactly 4 digit year.
var dueRe = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)

// ParseDueDate parses a due value into a calendar date. It reports false
// for the NONE sentinel and for anything that is not a real date in the
// proleptic Gregorian calendar (e.g. 31-02-2025).
func ParseDueDate(s string) (time.Time, bool) {
	m := dueRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components, so 31-02-2025 becomes
	// a date in March. Round-trip the components to reject those.
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// ValidDue reports whether s is an acceptable due value: the NONE sentinel
// or a real calendar date in DD-MM-YYYY form.
func ValidDue(s string) bool {
	if s == DueNone {
		return true
	}
	_, ok := ParseDueDate(s)
	return ok
}

// NumericName reports whether a name consists entirely of digits. Such
// names are rejected at creation and at rename.
func NumericName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// FormatCtime renders a creation instant in the stored ctime form:
// day and month without leading zeros, time zero-padded.
func FormatCtime(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d %02d:%02d:%02d",
		t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute(), t.Second())
}

// Task is one record in the store. ID and the creation fields are
// write-once; every other field is mutable through mod (and Done also
// through done).
type Task struct {
	ID   int
	Name string
	Type string
	Desc string
	Due  string
	Rep  Repeat
	Prio Priority
	Done bool

	// Ctime is the rendered creation timestamp; Created is the recorded
	// instant it was derived from, kept so ctime sorting stays
	// chronological without reparsing.
	Ctime   string
	Created time.Time
}

// Value returns the stringified value of property p, as used for table
// cells and for case-insensitive property matching.
func (t *Task) Value(p Property) string {
	switch p {
	case PropName:
		return t.Name
	case PropType:
		return t.Type
	case PropDesc:
		return t.Desc
	case PropDue:
		return t.Due
	case PropRep:
		return string(t.Rep)
	case PropPrio:
		return string(t.Prio)
	case PropDone:
		return FormatDone(t.Done)
	case PropCtime:
		return t.Ctime
	case PropID:
		return strconv.Itoa(t.ID)
	}
	return ""
}
