package checklist

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"offboard-checklist/internal/models"
)

//go:embed template.yaml
var defaultTemplate []byte

type Group struct {
	Category string   `yaml:"category"`
	Tasks    []string `yaml:"tasks"`
}

// Template is the ordered set of (category, task) pairs copied into every new
// ticket.
type Template []Group

// Default returns the embedded template.
func Default() Template {
	t, err := Parse(defaultTemplate)
	if err != nil {
		panic("checklist: embedded template: " + err.Error())
	}
	return t
}

// Load reads a template from path, or returns Default when path is empty.
func Load(path string) (Template, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checklist template: %w", err)
	}
	t, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func Parse(b []byte) (Template, error) {
	var t Template
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse checklist template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t Template) Validate() error {
	if len(t) == 0 {
		return errors.New("checklist template is empty")
	}
	for i, g := range t {
		if strings.TrimSpace(g.Category) == "" {
			return fmt.Errorf("group %d: category is required", i)
		}
		if len(g.Tasks) == 0 {
			return fmt.Errorf("group %q: no tasks", g.Category)
		}
		for j, task := range g.Tasks {
			if strings.TrimSpace(task) == "" {
				return fmt.Errorf("group %q: task %d is blank", g.Category, j)
			}
		}
	}
	return nil
}

func (t Template) TaskCount() int {
	n := 0
	for _, g := range t {
		n += len(g.Tasks)
	}
	return n
}

// Items flattens the template into unsaved checklist items. SortOrder counts
// up from zero across the whole flattened sequence.
func (t Template) Items() []models.ChecklistItem {
	out := make([]models.ChecklistItem, 0, t.TaskCount())
	sortOrder := 0
	for _, g := range t {
		for _, task := range g.Tasks {
			out = append(out, models.ChecklistItem{
				Category:  g.Category,
				Task:      task,
				Status:    models.StatusNotStarted,
				SortOrder: sortOrder,
			})
			sortOrder++
		}
	}
	return out
}
