// Package store reads and writes the .dayplan/ plan and config files.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/msageha/dayplan/internal/calendar"
	"github.com/msageha/dayplan/internal/model"
)

const (
	PlanFileName   = "plan.yaml"
	ConfigFileName = "config.yaml"
	planSchemaVersion = 1
)

// PlanFile is the on-disk shape of the user's tasks and workflows.
type PlanFile struct {
	SchemaVersion int              `yaml:"schema_version"`
	Tasks         []model.Task     `yaml:"tasks"`
	Workflows     []model.Workflow `yaml:"workflows"`
}

type Store struct {
	dir string
}

// New returns a store rooted at the given .dayplan/ directory.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) PlanPath() string {
	return filepath.Join(s.dir, PlanFileName)
}

// LoadPlan reads plan.yaml. A missing file yields an empty plan, not an
// error, so a freshly initialized directory schedules cleanly.
func (s *Store) LoadPlan() (PlanFile, error) {
	data, err := os.ReadFile(s.PlanPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return PlanFile{SchemaVersion: planSchemaVersion}, nil
		}
		return PlanFile{}, fmt.Errorf("read %s: %w", PlanFileName, err)
	}

	var plan PlanFile
	if err := yamlv3.Unmarshal(data, &plan); err != nil {
		return PlanFile{}, fmt.Errorf("parse %s: %w", PlanFileName, err)
	}
	return plan, nil
}

func (s *Store) SavePlan(plan PlanFile) error {
	if plan.SchemaVersion == 0 {
		plan.SchemaVersion = planSchemaVersion
	}
	if err := AtomicWrite(s.PlanPath(), plan); err != nil {
		return fmt.Errorf("save %s: %w", PlanFileName, err)
	}
	return nil
}

// LoadConfig reads config.yaml, falling back to defaults when the file does
// not exist.
func (s *Store) LoadConfig() (model.Config, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, ConfigFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(""), nil
		}
		return model.Config{}, fmt.Errorf("read %s: %w", ConfigFileName, err)
	}

	var cfg model.Config
	if err := yamlv3.Unmarshal(data, &cfg); err != nil {
		return model.Config{}, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration written by `dayplan init`.
func DefaultConfig(projectName string) model.Config {
	return model.Config{
		Project:  model.ProjectConfig{Name: projectName},
		Calendar: calendar.DefaultWeek(),
		Scheduling: model.SchedulingConfig{
			TieBreaking:        "creation_date",
			HorizonDays:        30,
			StrictDependencies: true,
			EnforceDailyLimits: true,
		},
		Watcher: model.WatcherConfig{DebounceSec: 1.0},
		Logging: model.LoggingConfig{Level: "info"},
	}
}

// Init creates the .dayplan/ directory with a default config and a sample
// plan file. Existing files are left untouched.
func Init(projectDir string) (string, error) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(abs, ".dayplan")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	s := New(dir)

	cfgPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		if err := AtomicWrite(cfgPath, DefaultConfig(filepath.Base(abs))); err != nil {
			return "", err
		}
	}

	if _, err := os.Stat(s.PlanPath()); errors.Is(err, os.ErrNotExist) {
		sample := PlanFile{
			SchemaVersion: planSchemaVersion,
			Tasks: []model.Task{{
				ID:              "example",
				Name:            "Replace this with a real task",
				DurationMinutes: 60,
				WorkType:        model.WorkTypeFocused,
				Importance:      5,
				Urgency:         5,
				CreatedAt:       time.Now().UTC(),
			}},
		}
		if err := s.SavePlan(sample); err != nil {
			return "", err
		}
	}

	return dir, nil
}

// FindDir searches for .dayplan/ in the given directory and its ancestors.
func FindDir(from string) string {
	dir := from
	for {
		candidate := filepath.Join(dir, ".dayplan")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
