package goals

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/chronoforge/internal/cli"
	"github.com/julianstephens/chronoforge/internal/models"
	"github.com/julianstephens/chronoforge/internal/validation"
)

type ImportCmd struct {
	File   string `arg:"" help:"YAML file with a 'goals' list." type:"existingfile"`
	DryRun bool   `help:"Validate the file without saving anything."`
}

type goalFile struct {
	Goals []yaml.Node `yaml:"goals"`
}

// ParseGoals reads goal drafts from YAML, either under a top-level
// "goals" key or as a bare list. Fields an entry omits take their defaults.
func ParseGoals(data []byte) ([]models.GoalDraft, error) {
	var file goalFile
	if err := yaml.Unmarshal(data, &file); err == nil {
		return decodeDrafts(file.Goals)
	}
	var list []yaml.Node
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse goals file: %w", err)
	}
	return decodeDrafts(list)
}

func decodeDrafts(nodes []yaml.Node) ([]models.GoalDraft, error) {
	drafts := make([]models.GoalDraft, 0, len(nodes))
	for i := range nodes {
		d := models.NewGoalDraft("")
		if err := nodes[i].Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to parse goal %d: %w", i+1, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	drafts, err := ParseGoals(data)
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		ctx.Println("No goals found in file.")
		return nil
	}

	existing, err := ctx.Store.ListGoals(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, g := range existing {
		taken[strings.ToLower(g.Name)] = true
	}

	added, skipped := 0, 0
	for i, d := range drafts {
		key := strings.ToLower(strings.TrimSpace(d.Name))
		if taken[key] {
			ctx.Printf("  skipped %q: already exists\n", d.Name)
			skipped++
			continue
		}
		if c.DryRun {
			if err := validation.ValidateGoalDraft(d.ApplyDefaults()); err != nil {
				return fmt.Errorf("goal %d (%q): %w", i+1, d.Name, err)
			}
			ctx.Printf("  would add %q\n", d.Name)
			taken[key] = true
			added++
			continue
		}
		if _, err := Create(ctx, d); err != nil {
			return fmt.Errorf("goal %d (%q): %w", i+1, d.Name, err)
		}
		taken[key] = true
		added++
	}

	verb := "Imported"
	if c.DryRun {
		verb = "Would import"
	}
	ctx.Printf("%s %d goal(s), skipped %d.\n", verb, added, skipped)
	return nil
}
