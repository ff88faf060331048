package domain

// Task is a single unit of work belonging to a project. The project
// reference is lookup-only: deleting a project leaves its tasks in
// place with a dangling ProjectID.
type Task struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"projectId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Responsible []string `json:"responsible,omitempty"`
	EndDate     string   `json:"endDate"`
	Ended       bool     `json:"ended,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Status      string   `json:"status,omitempty"`
	PathFile    string   `json:"pathFile,omitempty"`
}

// TaskPatch is a partial update. A nil field keeps the stored value.
type TaskPatch struct {
	ProjectID   *string
	Title       *string
	Description *string
	Responsible *[]string
	EndDate     *string
	Ended       *bool
	Notes       *string
	Status      *string
	PathFile    *string
}
