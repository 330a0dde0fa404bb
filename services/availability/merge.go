package availability

import (
	"sort"

	"wezet/models"
)

// interval is a clock range in minutes from midnight, start inclusive,
// end exclusive.
type interval struct {
	start int
	end   int
}

func (iv interval) overlaps(other interval) bool {
	return iv.start < other.end && other.start < iv.end
}

// exceptionInterval is an exception's range plus its direction.
type exceptionInterval struct {
	interval
	available bool
}

// daySlot is a resolved range for one date before it is rendered back to
// clock strings.
type daySlot struct {
	interval
	source string
}

// subtract removes the overlapping portion of sub from every interval in
// set. A range fully inside an interval splits it into the two remainders;
// a full cover drops it.
func subtract(set []interval, sub interval) []interval {
	out := make([]interval, 0, len(set)+1)
	for _, iv := range set {
		if !iv.overlaps(sub) {
			out = append(out, iv)
			continue
		}
		if iv.start < sub.start {
			out = append(out, interval{start: iv.start, end: sub.start})
		}
		if sub.end < iv.end {
			out = append(out, interval{start: sub.end, end: iv.end})
		}
	}
	return out
}

// coalesce sorts the set and merges overlapping or touching intervals.
func coalesce(set []interval) []interval {
	if len(set) == 0 {
		return nil
	}
	sorted := make([]interval, len(set))
	copy(sorted, set)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	out := []interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// mergeDay resolves one date: exceptions override the rule-derived base
// ranges, and a blocking exception also wins over an available one where
// they overlap. The result is sorted by start and overlap-free, which is the
// output invariant ResolveSlots promises.
func mergeDay(base []interval, exceptions []exceptionInterval) []daySlot {
	remaining := coalesce(base)
	var adds []interval
	for _, ex := range exceptions {
		remaining = subtract(remaining, ex.interval)
		if ex.available {
			adds = append(adds, ex.interval)
		}
	}
	adds = coalesce(adds)
	for _, ex := range exceptions {
		if !ex.available {
			adds = subtract(adds, ex.interval)
		}
	}

	slots := make([]daySlot, 0, len(remaining)+len(adds))
	for _, iv := range remaining {
		slots = append(slots, daySlot{interval: iv, source: models.SlotSourceRule})
	}
	for _, iv := range adds {
		slots = append(slots, daySlot{interval: iv, source: models.SlotSourceException})
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].start < slots[j].start })
	return slots
}
