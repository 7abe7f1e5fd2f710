package model

type Config struct {
	Project    ProjectConfig    `yaml:"project"`
	Calendar   []WorkDayTemplate `yaml:"calendar"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
	Watcher    WatcherConfig    `yaml:"watcher"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ProjectConfig struct {
	Name string `yaml:"name"`
}

// WorkDayTemplate describes one weekday's working window. Times are local
// clock strings ("09:00"). FocusedShare of zero means the default split.
type WorkDayTemplate struct {
	DayOfWeek         string      `yaml:"day_of_week"` // monday..sunday
	IsWorkingDay      bool        `yaml:"is_working_day"`
	WindowStart       string      `yaml:"window_start,omitempty"`
	WindowEnd         string      `yaml:"window_end,omitempty"`
	Breaks            []TimeRange `yaml:"breaks,omitempty"`
	Meetings          []TimeRange `yaml:"meetings,omitempty"`
	MaxFocusedMinutes int         `yaml:"max_focused_minutes,omitempty"`
	MaxAdminMinutes   int         `yaml:"max_admin_minutes,omitempty"`
	FocusedShare      float64     `yaml:"focused_share,omitempty"`
}

type TimeRange struct {
	Start string `yaml:"start"` // "12:00"
	End   string `yaml:"end"`   // "13:00"
}

type SchedulingConfig struct {
	TieBreaking        string `yaml:"tie_breaking"` // creation_date|duration_shortest|duration_longest|alphabetical
	HorizonDays        int    `yaml:"horizon_days"`
	AllowOverflow      bool   `yaml:"allow_overflow"`
	StrictDependencies bool   `yaml:"strict_dependencies"`
	EnforceDailyLimits bool   `yaml:"enforce_daily_limits"`
}

type WatcherConfig struct {
	DebounceSec float64 `yaml:"debounce_sec"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}
