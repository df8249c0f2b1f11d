package models

// Task is a to-do item, the primary entity of the application.
type Task struct {
	SyncMeta

	Title    string  `json:"title"`
	Notes    string  `json:"notes,omitempty"`
	Priority int     `json:"priority"`
	DueAt    *int64  `json:"dueAt"`
	// CategoryID references a Category; nil for uncategorised tasks.
	CategoryID *string `json:"categoryId"`
	// LocationID references a Location used for place-based reminders.
	LocationID *string `json:"locationId"`
}

func (t *Task) EntityType() EntityType { return EntityTasks }

// Category groups tasks for display and filtering.
type Category struct {
	SyncMeta

	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon,omitempty"`
	SortOrder int    `json:"sortOrder"`
}

func (c *Category) EntityType() EntityType { return EntityCategories }

// Completion records one finished occurrence of a task. Recurring tasks
// accumulate one Completion per occurrence; one-off tasks get at most one.
type Completion struct {
	SyncMeta

	TaskID      string `json:"taskId"`
	CompletedAt int64  `json:"completedAt"`
	Note        string `json:"note,omitempty"`
}

func (c *Completion) EntityType() EntityType { return EntityCompletions }

// Location is a named place used for location-based task prompts.
type Location struct {
	SyncMeta

	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radiusMeters"`
}

func (l *Location) EntityType() EntityType { return EntityLocations }
