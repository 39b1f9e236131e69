// Package config handles duewatch board configuration.
package config

const (
	// DefaultDir is the default board directory name.
	DefaultDir = "duewatch"
	// DefaultTasksDir is the default tasks subdirectory name.
	DefaultTasksDir = "tasks"
	// DefaultCategory is the category new tasks land in.
	DefaultCategory = "personal"
	// DefaultPriority is the default priority for new tasks.
	DefaultPriority = "medium"
	// DefaultLocation resolves deadlines against the machine's zone.
	DefaultLocation = "Local"
	// DefaultRefresh is how often live views re-evaluate urgency.
	DefaultRefresh = "30s"

	// ConfigFileName is the name of the config file within the board directory.
	ConfigFileName = "config.yml"
	// UsersFileName is the name of the user registry within the board directory.
	UsersFileName = "users.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)

// Default slice values for a new board (slices cannot be const).
var (
	DefaultCategories = []CategoryConfig{
		{ID: "personal", Name: "Personal", Icon: "👤", Color: "#667eea"},
		{ID: "groceries", Name: "Groceries", Icon: "🛒", Color: "#4ecdc4"},
		{ID: "health", Name: "Health", Icon: "🏥", Color: "#ff6b6b"},
		{ID: "appointments", Name: "Appointments", Icon: "📅", Color: "#feca57"},
		{ID: "meetings", Name: "Meetings", Icon: "👥", Color: "#48dbfb"},
		{ID: "calls", Name: "Calls", Icon: "📞", Color: "#ff9ff3"},
		{ID: "work", Name: "Work", Icon: "💼", Color: "#54a0ff"},
		{ID: "studies", Name: "Studies", Icon: "📚", Color: "#5f27cd"},
		{ID: "home", Name: "Home", Icon: "🏠", Color: "#00d2d3"},
		{ID: "other", Name: "Other", Icon: "📝", Color: "#6c757d"},
	}

	// Priorities is the fixed set of task priorities, lowest first.
	Priorities = []string{"low", "medium", "high"}
)
