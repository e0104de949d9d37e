package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
)

func slot(startHour, startMin, endHour, endMin int) Interval {
	return Interval{
		Start: dt(2026, 3, 1, startHour, startMin),
		End:   dt(2026, 3, 1, endHour, endMin),
	}
}

func TestAllocateGoal_PrefersWindowsThenSpills(t *testing.T) {
	goal := models.Goal{
		ID:               "g1",
		Name:             "Gym",
		Category:         constants.CategoryFitness,
		PreferredWindows: []constants.TimeWindow{constants.WindowEvening},
	}
	free := []Interval{slot(8, 0, 10, 0), slot(13, 0, 15, 0), slot(18, 0, 21, 0)}

	alloc := AllocateGoal(goal, free, 4*time.Hour)

	if alloc.Allocated != 4*time.Hour {
		t.Errorf("allocated = %v, want 4h", alloc.Allocated)
	}
	if len(alloc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(alloc.Blocks))
	}
	if !alloc.Blocks[0].Start.Equal(dt(2026, 3, 1, 18, 0)) || !alloc.Blocks[0].End.Equal(dt(2026, 3, 1, 21, 0)) {
		t.Errorf("first block = %v-%v, want the evening slot", alloc.Blocks[0].Start, alloc.Blocks[0].End)
	}
	if !alloc.Blocks[1].Start.Equal(dt(2026, 3, 1, 8, 0)) || !alloc.Blocks[1].End.Equal(dt(2026, 3, 1, 9, 0)) {
		t.Errorf("second block = %v-%v, want 08:00-09:00", alloc.Blocks[1].Start, alloc.Blocks[1].End)
	}
	for _, b := range alloc.Blocks {
		if b.GoalID != "g1" || b.GoalName != "Gym" || b.Category != constants.CategoryFitness || b.IsFixed {
			t.Errorf("block not labelled with the goal: %+v", b)
		}
	}

	want := []Interval{slot(9, 0, 10, 0), slot(13, 0, 15, 0)}
	if len(alloc.Free) != len(want) {
		t.Fatalf("free = %+v, want %+v", alloc.Free, want)
	}
	for i := range want {
		if !alloc.Free[i].Start.Equal(want[i].Start) || !alloc.Free[i].End.Equal(want[i].End) {
			t.Errorf("free[%d] = %+v, want %+v", i, alloc.Free[i], want[i])
		}
	}
}

func TestAllocateGoal_WindowContainment(t *testing.T) {
	goal := models.Goal{ID: "g1", PreferredWindows: []constants.TimeWindow{constants.WindowMorning}}
	// 11:00-13:00 crosses the morning boundary so it is not preferred
	free := []Interval{slot(11, 0, 13, 0), slot(14, 0, 16, 0), slot(8, 0, 10, 0)}

	alloc := AllocateGoal(goal, free, time.Hour)

	if len(alloc.Blocks) != 1 || !alloc.Blocks[0].Start.Equal(dt(2026, 3, 1, 8, 0)) {
		t.Fatalf("expected the 08:00 slot to be used first, got %+v", alloc.Blocks)
	}
}

func TestAllocateGoal_RemainderRules(t *testing.T) {
	tests := []struct {
		name     string
		budget   time.Duration
		slot     Interval
		wantFree int
		wantTake time.Duration
	}{
		{"exact match leaves nothing", 2 * time.Hour, slot(8, 0, 10, 0), 0, 2 * time.Hour},
		{"short remainder dropped", 100 * time.Minute, slot(8, 0, 10, 0), 0, 100 * time.Minute},
		{"thirty minute remainder kept", 90 * time.Minute, slot(8, 0, 10, 0), 1, 90 * time.Minute},
		{"slot shorter than need fully used", 5 * time.Hour, slot(8, 0, 10, 0), 0, 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := AllocateGoal(models.Goal{ID: "g"}, []Interval{tt.slot}, tt.budget)
			if alloc.Allocated != tt.wantTake {
				t.Errorf("allocated = %v, want %v", alloc.Allocated, tt.wantTake)
			}
			if len(alloc.Free) != tt.wantFree {
				t.Errorf("free = %+v, want %d intervals", alloc.Free, tt.wantFree)
			}
		})
	}
}

func TestAllocateGoal_StopsOnceNeedIsMet(t *testing.T) {
	free := []Interval{slot(8, 0, 10, 0), slot(12, 0, 14, 0), slot(15, 0, 17, 0)}

	alloc := AllocateGoal(models.Goal{ID: "g"}, free, time.Hour)

	if len(alloc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(alloc.Blocks))
	}
	if len(alloc.Free) != 3 {
		t.Fatalf("expected remainder plus 2 untouched intervals, got %+v", alloc.Free)
	}
	if !alloc.Free[1].Start.Equal(free[1].Start) || !alloc.Free[2].End.Equal(free[2].End) {
		t.Errorf("untouched intervals changed: %+v", alloc.Free)
	}
}

func TestAllocateGoal_ZeroBudget(t *testing.T) {
	free := []Interval{slot(8, 0, 10, 0)}

	alloc := AllocateGoal(models.Goal{ID: "g"}, free, 0)

	if len(alloc.Blocks) != 0 || alloc.Allocated != 0 {
		t.Errorf("expected no allocation, got %+v", alloc)
	}
	if len(alloc.Free) != 1 {
		t.Errorf("expected free set unchanged, got %+v", alloc.Free)
	}
}

func TestAllocateGoal_DoesNotMutateInput(t *testing.T) {
	free := []Interval{slot(8, 0, 10, 0), slot(12, 0, 14, 0)}
	original := make([]Interval, len(free))
	copy(original, free)

	AllocateGoal(models.Goal{ID: "g"}, free, 3*time.Hour)

	for i := range free {
		if !free[i].Start.Equal(original[i].Start) || !free[i].End.Equal(original[i].End) {
			t.Errorf("input interval %d changed from %+v to %+v", i, original[i], free[i])
		}
	}
}

func TestAllocateGoal_UnknownWindowNeverMatches(t *testing.T) {
	goal := models.Goal{ID: "g", PreferredWindows: []constants.TimeWindow{"midnight"}}
	free := []Interval{slot(8, 0, 10, 0), slot(12, 0, 14, 0)}

	alloc := AllocateGoal(goal, free, time.Hour)

	if !alloc.Blocks[0].Start.Equal(dt(2026, 3, 1, 8, 0)) {
		t.Errorf("expected original order to be kept, got %+v", alloc.Blocks)
	}
}
