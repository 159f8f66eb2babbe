// Package feature models the hierarchical records served by the feature
// tool: features own an ordered task list and a free-form document body.
package feature

// Summary is a single row in the feature listing.
type Summary struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Status    string `yaml:"status"`
	TaskCount int    `yaml:"tasks"`
}

// Task is one ordered child of a feature.
type Task struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Status      string   `yaml:"status"`
	Criteria    []string `yaml:"criteria"`
}

// Detail is a fully loaded feature record.
type Detail struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Status      string `yaml:"status"`
	Description string `yaml:"description"`
	Tasks       []Task `yaml:"tasks"`
}

// Document is the free-form body attached to a feature.
type Document struct {
	FeatureID string `yaml:"feature"`
	Body      string `yaml:"body"`
}

// Clone returns a deep copy of the task, including its criteria lines.
func (t Task) Clone() Task {
	out := t
	out.Criteria = append([]string(nil), t.Criteria...)
	return out
}

// TaskByID returns the task with the given id, if present.
func (d Detail) TaskByID(id string) (Task, bool) {
	for _, t := range d.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}
