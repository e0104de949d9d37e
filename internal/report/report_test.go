package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, time.UTC)
}

func samplePlan() models.PlanResponse {
	return models.PlanResponse{
		StartDate: "2024-01-01",
		Days:      2,
		Blocks: []models.PlannedBlock{
			{GoalID: "e1", GoalName: "Lecture", Start: at(1, 9, 0), End: at(1, 10, 0), IsFixed: true},
			{GoalID: "g1", GoalName: "Study", Category: constants.CategoryStudy, Start: at(1, 10, 0), End: at(1, 11, 30)},
			{GoalID: "g1", GoalName: "Study", Category: constants.CategoryStudy, Start: at(2, 7, 0), End: at(2, 8, 0)},
		},
		Unmet: []models.UnmetGoal{
			{GoalID: "g2", GoalName: "Gym", TargetHours: 2, AllocatedHours: 0.5, DeficitHours: 1.5},
		},
		CapacityByDay: []models.DayCapacity{
			{Date: "2024-01-01", TotalHours: 16, AllocatedHours: 1.5, SpareHours: 14.5},
			{Date: "2024-01-02", TotalHours: 17, AllocatedHours: 1, SpareHours: 16},
		},
		CoachingMessages: []string{"Keep going."},
	}
}

func TestWritePlan(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlan(&buf, samplePlan(), nil); err != nil {
		t.Fatalf("WritePlan() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Plan for 2 days starting 2024-01-01",
		"Monday, 2024-01-01",
		"Tuesday, 2024-01-02",
		"* 09:00–10:00  Lecture (1.0h)",
		"10:00–11:30  Study (1.5h)",
		"Gym: 0.5h of 2.0h (short 1.5h)",
		"Keep going.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "2024-01-01\n") > strings.Index(out, "Tuesday") {
		t.Error("days should be listed in chronological order")
	}
}

func TestWritePlan_LocationShiftsDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	plan := models.PlanResponse{
		StartDate: "2024-01-01",
		Days:      1,
		Blocks: []models.PlannedBlock{
			{GoalName: "Study", Start: at(1, 20, 0), End: at(1, 21, 0)},
		},
	}

	var buf bytes.Buffer
	if err := WritePlan(&buf, plan, loc); err != nil {
		t.Fatalf("WritePlan() error = %v", err)
	}
	if !strings.Contains(buf.String(), "2024-01-02") || !strings.Contains(buf.String(), "06:00–07:00") {
		t.Errorf("block should render on the local day:\n%s", buf.String())
	}
}

func TestWritePlan_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePlan(&buf, models.PlanResponse{StartDate: "2024-01-01", Days: 14}, time.UTC); err != nil {
		t.Fatalf("WritePlan() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No blocks scheduled") {
		t.Errorf("expected empty-plan notice, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Unmet goals") {
		t.Error("empty plan should not list unmet goals")
	}
}

func TestCapacityTable(t *testing.T) {
	out := CapacityTable(samplePlan())
	for _, want := range []string{"Date", "Spare", "2024-01-01", "14.5h", "Total", "33.0h", "2.5h", "30.5h"} {
		if !strings.Contains(out, want) {
			t.Errorf("capacity table missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTradeoff(t *testing.T) {
	tests := []struct {
		name   string
		report models.TradeoffReport
		want   []string
	}{
		{
			name: "feasible with losses",
			report: models.TradeoffReport{
				NewGoalName:  "Startup",
				NewGoalHours: 14,
				Feasible:     true,
				Affected:     []models.TradeoffEntry{{GoalName: "Study", HoursLost: 14}},
			},
			want: []string{`Adding "Startup" would receive 14.0h`, "looks feasible", "Study: -14.0h"},
		},
		{
			name:   "infeasible without losses",
			report: models.TradeoffReport{NewGoalName: "Marathon", NewGoalHours: 2},
			want:   []string{"does not look feasible", "No existing goal loses meaningful time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteTradeoff(&buf, tt.report); err != nil {
				t.Fatalf("WriteTradeoff() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestHoursDiff(t *testing.T) {
	r := models.TradeoffReport{
		NewGoalName: "Startup",
		HoursBefore: map[string]float64{"Study": 56, "Gym": 4},
		HoursAfter:  map[string]float64{"Study": 42, "Gym": 4, "Startup": 14},
	}

	diff, err := HoursDiff(r)
	if err != nil {
		t.Fatalf("HoursDiff() error = %v", err)
	}
	for _, want := range []string{"--- current", "+++ with Startup", "-Study: 56.0h", "+Study: 42.0h", "+Startup: 14.0h", " Gym: 4.0h"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff missing %q:\n%s", want, diff)
		}
	}
}

func TestHoursDiff_NoChange(t *testing.T) {
	hours := map[string]float64{"Study": 10}
	diff, err := HoursDiff(models.TradeoffReport{NewGoalName: "X", HoursBefore: hours, HoursAfter: hours})
	if err != nil {
		t.Fatalf("HoursDiff() error = %v", err)
	}
	if diff != "" {
		t.Errorf("HoursDiff() = %q, want empty", diff)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, samplePlan()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"start_date": "2024-01-01"`) {
		t.Errorf("unexpected JSON:\n%s", buf.String())
	}
}
