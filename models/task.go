package models

import "time"

// TaskStage is the workflow stage of a task. Any direct transition between
// stages is permitted; only membership in the enum is validated.
type TaskStage string

const (
	StageTodo  TaskStage = "TODO"
	StageDoing TaskStage = "DOING"
	StageDone  TaskStage = "DONE"
)

// Valid reports whether s is one of the known task stages.
func (s TaskStage) Valid() bool {
	switch s {
	case StageTodo, StageDoing, StageDone:
		return true
	default:
		return false
	}
}

// Task represents a single unit of work owned by a user.
type Task struct {
	// ID is the unique identifier of the task,
	// assigned by the database on creation.
	ID int64 `json:"id" msgpack:"id"`

	// Name is the human-readable task description, at most 255 characters.
	Name string `json:"name" msgpack:"name"`

	// Stage is the current workflow stage. Defaults to TODO.
	Stage TaskStage `json:"stage" msgpack:"stage"`

	// CreatedAt is set once when the task is persisted.
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`

	// UpdatedAt strictly increases on every successful update.
	UpdatedAt time.Time `json:"updated_at" msgpack:"updated_at"`

	// OwnerID references the owning user row. Not exposed to clients;
	// the sanitized Owner snapshot is used instead.
	OwnerID int64 `json:"-" msgpack:"owner_id"`

	// Owner is the denormalized, output-safe snapshot of the owning user.
	// It is embedded in serialized and cached task values, which is exactly
	// why the owner's user-cache entry must be invalidated whenever the
	// task changes (and vice versa).
	Owner *PublicUser `json:"user,omitempty" msgpack:"owner,omitempty"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskUpdate represents a partial update of a single task.
// Only non-nil fields will be applied.
type TaskUpdate struct {
	// Name is the new task name. If nil, the field will not be updated.
	Name *string `json:"name,omitempty"`

	// Stage is the new workflow stage. If nil, the field will not be updated.
	Stage *TaskStage `json:"stage,omitempty"`
}
