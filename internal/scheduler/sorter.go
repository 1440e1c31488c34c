package scheduler

import (
	"math"
	"sort"

	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// SortSubDeadlines orders sub-deadlines by the deterministic canonical
// rules:
// 1. Date: earliest first (unresolved entries sort on their sentinel date)
// 2. Title: lexical ascending
// 3. ID: lexical ascending
func SortSubDeadlines(subs []domain.SubDeadline) {
	sort.SliceStable(subs, func(i, j int) bool {
		a, b := subs[i], subs[j]

		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
}

// TriggerOrderIndex returns the template-authored position of a trigger's
// originating blueprint, or math.MaxInt for triggers with no blueprint
// (manually added ones sort last).
func TriggerOrderIndex(tr domain.Trigger, tpl *domain.Template) int {
	if tpl == nil || tr.BlueprintID == "" {
		return math.MaxInt
	}
	if bp := tpl.TriggerBlueprintByID(tr.BlueprintID); bp != nil {
		return bp.OrderIndex
	}
	return math.MaxInt
}

// SortTriggers orders triggers by template-authored order index, then by
// name ascending.
func SortTriggers(triggers []domain.Trigger, tpl *domain.Template) {
	sort.SliceStable(triggers, func(i, j int) bool {
		oi, oj := TriggerOrderIndex(triggers[i], tpl), TriggerOrderIndex(triggers[j], tpl)
		if oi != oj {
			return oi < oj
		}
		return triggers[i].Name < triggers[j].Name
	})
}

// SubDeadlinesSorted reports whether the slice already satisfies the sort
// invariant (non-decreasing by date).
func SubDeadlinesSorted(subs []domain.SubDeadline) bool {
	for i := 1; i < len(subs); i++ {
		if subs[i].Date.Before(subs[i-1].Date) {
			return false
		}
	}
	return true
}
