package layout

import (
	"sort"

	"coursectl/pkg/catalog"
)

// Block is one meeting of a selected section on the weekly calendar
type Block struct {
	CourseID  string
	SectionID string
	Slot      catalog.TimeSlot
}

// Placement is a block together with the display column it was assigned.
// Columns is the number of columns open on that day when the block was placed.
type Placement struct {
	Block
	Column  int
	Columns int
}

// Day holds the placements of one weekday. Width is the number of columns
// the day needs so that no two overlapping meetings share a column.
type Day struct {
	Weekday    int
	Placements []Placement
	Width      int
}

// Arrange assigns every block a column within its weekday so that overlapping
// meetings sit side by side. Days are returned Monday first and only when
// they hold at least one block. Blocks with an invalid slot are dropped.
func Arrange(blocks []Block) []Day {
	byDay := make(map[int][]Block)
	for _, b := range blocks {
		if !b.Slot.Valid() {
			continue
		}
		byDay[b.Slot.Weekday] = append(byDay[b.Slot.Weekday], b)
	}

	var days []Day
	for weekday := 1; weekday <= 7; weekday++ {
		if len(byDay[weekday]) == 0 {
			continue
		}
		days = append(days, arrangeDay(weekday, byDay[weekday]))
	}
	return days
}

// arrangeDay is a greedy interval colouring: blocks are taken by start time and
// dropped into the leftmost column that is already free.
func arrangeDay(weekday int, blocks []Block) Day {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Slot.StartMin < blocks[j].Slot.StartMin
	})

	// end time of the last block in each column
	var columnEnds []int
	day := Day{Weekday: weekday}

	for _, b := range blocks {
		col := -1
		for i, end := range columnEnds {
			if end <= b.Slot.StartMin {
				col = i
				break
			}
		}
		if col == -1 {
			columnEnds = append(columnEnds, b.Slot.EndMin)
			col = len(columnEnds) - 1
		} else {
			columnEnds[col] = b.Slot.EndMin
		}

		day.Placements = append(day.Placements, Placement{
			Block:   b,
			Column:  col,
			Columns: len(columnEnds),
		})
	}

	day.Width = len(columnEnds)
	return day
}

// Overlaps reports whether two slots share any time on the same weekday
func Overlaps(a, b catalog.TimeSlot) bool {
	return a.Weekday == b.Weekday && a.StartMin < b.EndMin && b.StartMin < a.EndMin
}

// Conflicts returns the pairs of placements on the same day whose times overlap
func Conflicts(days []Day) [][2]Placement {
	var out [][2]Placement
	for _, d := range days {
		for i := 0; i < len(d.Placements); i++ {
			for j := i + 1; j < len(d.Placements); j++ {
				if Overlaps(d.Placements[i].Slot, d.Placements[j].Slot) {
					out = append(out, [2]Placement{d.Placements[i], d.Placements[j]})
				}
			}
		}
	}
	return out
}
