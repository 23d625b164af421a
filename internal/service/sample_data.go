package service

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed sample_data.yaml
var sampleDataYAML []byte

type sampleBoard struct {
	Swimlanes []sampleSwimlane `yaml:"swimlanes"`
}

type sampleSwimlane struct {
	Title    string          `yaml:"title"`
	Color    string          `yaml:"color"`
	Projects []sampleProject `yaml:"projects"`
}

type sampleProject struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Tasks       []sampleTask `yaml:"tasks"`
}

type sampleTask struct {
	Title     string       `yaml:"title"`
	Completed bool         `yaml:"completed"`
	DueDate   string       `yaml:"due_date"`
	SortOrder int          `yaml:"sort_order"`
	Subtasks  []sampleTask `yaml:"subtasks"`
}

func loadSampleBoard() (*sampleBoard, error) {
	var board sampleBoard
	if err := yaml.Unmarshal(sampleDataYAML, &board); err != nil {
		return nil, fmt.Errorf("failed to parse sample data: %w", err)
	}
	return &board, nil
}

// build turns a sample task into a domain task. Subtasks are not included.
func (st sampleTask) build(projectID, parentID uuid.UUID) (*domain.Task, error) {
	var due *domain.Date
	if st.DueDate != "" {
		d, err := domain.ParseDate(st.DueDate)
		if err != nil {
			return nil, fmt.Errorf("sample task %q: %w", st.Title, err)
		}
		due = &d
	}

	task, err := domain.NewTask(projectID, parentID, st.Title, due)
	if err != nil {
		return nil, err
	}
	task.Completed = st.Completed
	task.SortOrder = st.SortOrder
	return task, task.Validate()
}
