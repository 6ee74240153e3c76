package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/woodhull/taskmgr/internal/task"
)

// Direction selects ascending or descending order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"

	// DefaultSortBy and DefaultDirection apply when print/list omit the
	// sorting arguments.
	DefaultSortBy    = task.PropName
	DefaultDirection = Asc
)

// ParseDirection validates a direction token.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Asc, Desc:
		return Direction(s), true
	}
	return "", false
}

// Header is the fixed table header naming all nine properties.
const Header = "Name | Type | Desc | Due | Rep | Prio | Done | Ctime | Id"

// Sort returns the tasks ordered by the given property and direction. The
// input slice is not modified. The sort is stable: ties keep insertion
// order under both directions, and desc flips only non-tie comparisons.
// Tasks with due=NONE (or an unparseable due) sort after all real dates
// regardless of direction.
func Sort(tasks []*task.Task, by task.Property, dir Direction) []*task.Task {
	out := make([]*task.Task, len(tasks))
	copy(out, tasks)

	sort.SliceStable(out, func(i, j int) bool {
		c, absolute := compare(out[i], out[j], by)
		if !absolute && dir == Desc {
			c = -c
		}
		return c < 0
	})
	return out
}

// compare orders a before b for ascending order. absolute marks
// comparisons that must not be flipped for descending order (the
// NONE-last placement of missing due dates).
func compare(a, b *task.Task, by task.Property) (c int, absolute bool) {
	switch by {
	case task.PropName:
		return caseFold(a.Name, b.Name), false
	case task.PropType:
		return caseFold(a.Type, b.Type), false
	case task.PropDesc:
		return caseFold(a.Desc, b.Desc), false
	case task.PropDue:
		ad, aok := task.ParseDueDate(a.Due)
		bd, bok := task.ParseDueDate(b.Due)
		switch {
		case aok && bok:
			return ad.Compare(bd), false
		case aok:
			return -1, true
		case bok:
			return 1, true
		default:
			return 0, true
		}
	case task.PropRep:
		return strings.Compare(string(a.Rep), string(b.Rep)), false
	case task.PropPrio:
		return a.Prio.Rank() - b.Prio.Rank(), false
	case task.PropDone:
		return boolRank(a.Done) - boolRank(b.Done), false
	case task.PropCtime:
		return a.Created.Compare(b.Created), false
	case task.PropID:
		return a.ID - b.ID, false
	}
	return 0, false
}

func caseFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Table writes the header and one row per task, each row followed by a
// blank line. Rows render the tasks in the order given.
func Table(w io.Writer, tasks []*task.Task) {
	fmt.Fprintln(w, Header)
	for _, t := range tasks {
		cells := make([]string, 0, len(task.Properties))
		for _, p := range task.Properties {
			cells = append(cells, t.Value(p))
		}
		fmt.Fprintln(w, strings.Join(cells, " | "))
		fmt.Fprintln(w)
	}
}
