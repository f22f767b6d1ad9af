package model

import "fmt"

// Summary is the derived completion view of a collection.
type Summary struct {
	Active int
	Done   int
	Pct    string // percentage of done tasks, one decimal
}

// Total is Active + Done.
func (s Summary) Total() int { return s.Active + s.Done }

func (s Summary) String() string {
	return fmt.Sprintf("Active: %d · Done: %d · Done %%: %s%%", s.Active, s.Done, s.Pct)
}

// Summarize counts active and done tasks. An empty collection reports 0.0%.
func Summarize(tasks []Task) Summary {
	var s Summary
	for _, t := range tasks {
		if t.Done {
			s.Done++
		} else {
			s.Active++
		}
	}
	s.Pct = "0.0"
	if total := s.Total(); total > 0 {
		// integer tenths of a percent, ties rounded up
		tenths := (s.Done*1000 + total/2) / total
		s.Pct = fmt.Sprintf("%d.%d", tenths/10, tenths%10)
	}
	return s
}

// Partition splits tasks into active and done, keeping insertion order
// inside each group.
func Partition(tasks []Task) (active, done []Task) {
	active = make([]Task, 0, len(tasks))
	done = make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Done {
			done = append(done, t)
		} else {
			active = append(active, t)
		}
	}
	return active, done
}
