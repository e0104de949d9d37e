package goals

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chronoforge/internal/constants"
	"github.com/julianstephens/chronoforge/internal/models"
)

// FormModel holds the raw values of the interactive goal form
type FormModel struct {
	Name     string
	Category constants.GoalCategory
	Weight   string
	Hours    string
	Windows  []constants.TimeWindow
	Deadline string
}

// NewFormModel seeds the form from a draft
func NewFormModel(d models.GoalDraft) *FormModel {
	d = d.ApplyDefaults()
	fm := &FormModel{
		Name:     d.Name,
		Category: d.Category,
		Weight:   strconv.Itoa(d.PriorityWeight),
		Hours:    strconv.FormatFloat(d.WeeklyTargetHours, 'f', -1, 64),
		Windows:  d.PreferredWindows,
	}
	if d.HardDeadline != nil {
		fm.Deadline = d.HardDeadline.Format(constants.DateFormat)
	}
	return fm
}

// Draft converts the form values into a goal draft
func (fm *FormModel) Draft(loc *time.Location) (models.GoalDraft, error) {
	weight, err := strconv.Atoi(strings.TrimSpace(fm.Weight))
	if err != nil {
		return models.GoalDraft{}, fmt.Errorf("invalid priority weight %q: %w", fm.Weight, err)
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(fm.Hours), 64)
	if err != nil {
		return models.GoalDraft{}, fmt.Errorf("invalid weekly hours %q: %w", fm.Hours, err)
	}

	d := models.GoalDraft{
		Name:              strings.TrimSpace(fm.Name),
		Category:          fm.Category,
		PriorityWeight:    weight,
		WeeklyTargetHours: hours,
		PreferredWindows:  fm.Windows,
	}
	if deadline := strings.TrimSpace(fm.Deadline); deadline != "" {
		t, err := time.ParseInLocation(constants.DateFormat, deadline, loc)
		if err != nil {
			return models.GoalDraft{}, fmt.Errorf("invalid deadline %q, use YYYY-MM-DD: %w", deadline, err)
		}
		d.HardDeadline = &t
	}
	return d, nil
}

// NewForm creates the interactive form for adding a goal
func NewForm(fm *FormModel) *huh.Form {
	categories := make([]huh.Option[constants.GoalCategory], len(constants.GoalCategories))
	for i, c := range constants.GoalCategories {
		categories[i] = huh.NewOption(strings.ToUpper(string(c[:1]))+string(c[1:]), c)
	}
	windows := make([]huh.Option[constants.TimeWindow], len(constants.TimeWindows))
	for i, w := range constants.TimeWindows {
		windows[i] = huh.NewOption(string(w), w)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("goal name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[constants.GoalCategory]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewInput().
				Title(fmt.Sprintf("Priority weight (%d-%d)", constants.MinPriorityWeight, constants.MaxPriorityWeight)).
				Value(&fm.Weight).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if i < constants.MinPriorityWeight || i > constants.MaxPriorityWeight {
						return fmt.Errorf("weight must be %d-%d", constants.MinPriorityWeight, constants.MaxPriorityWeight)
					}
					return nil
				}),
			huh.NewInput().
				Title("Weekly target (hours)").
				Value(&fm.Hours).
				Validate(func(s string) error {
					h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return err
					}
					if h <= 0 {
						return fmt.Errorf("weekly target must be positive")
					}
					return nil
				}),
			huh.NewMultiSelect[constants.TimeWindow]().
				Title("Preferred windows").
				Description("Leave empty for any time of day").
				Options(windows...).
				Value(&fm.Windows),
			huh.NewInput().
				Title("Hard deadline").
				Description("Optional, YYYY-MM-DD").
				Value(&fm.Deadline),
		),
	).WithTheme(huh.ThemeDracula())
}
