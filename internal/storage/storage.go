package storage

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	nextuperrors "github.com/abatilo/nextup/internal/errors"
	"github.com/abatilo/nextup/internal/task"
)

const (
	fileExt     = ".yaml"
	projectsDir = "projects"
)

// Store handles project file operations. Each project is one task tree
// stored as <name>.yaml under <base path>/projects, apart from config and
// template files that share the base path.
type Store struct {
	basePath string
}

// NewStore creates a Store rooted at dataDir.
func NewStore(dataDir string) *Store {
	return &Store{basePath: dataDir}
}

// BasePath returns the base path of the store.
func (s *Store) BasePath() string {
	return s.basePath
}

// ProjectsPath returns the directory holding the project files.
func (s *Store) ProjectsPath() string {
	return filepath.Join(s.basePath, projectsDir)
}

// IsInitialized checks if the projects directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.ProjectsPath())
	return err == nil && info.IsDir()
}

// Init creates the data and projects directories.
func (s *Store) Init(force bool) error {
	if s.IsInitialized() && !force {
		return nextuperrors.AlreadyInitializedError{}
	}
	//nolint:gosec // G301: 0755 is appropriate for user-accessible data directory
	return os.MkdirAll(s.ProjectsPath(), 0o755)
}

// projectPath returns the full path for a project file.
func (s *Store) projectPath(name string) string {
	return filepath.Join(s.ProjectsPath(), SanitizeName(name)+fileExt)
}

// Exists checks if a project with the given name exists.
func (s *Store) Exists(name string) bool {
	if SanitizeName(name) == "" {
		return false
	}
	_, err := os.Stat(s.projectPath(name))
	return err == nil
}

// Projects returns the file names of all projects, sorted.
func (s *Store) Projects() ([]string, error) {
	if !s.IsInitialized() {
		return nil, nextuperrors.NotInitializedError{}
	}

	entries, err := os.ReadDir(s.ProjectsPath())
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads a project tree from disk.
func (s *Store) Load(name string) (*task.Tree, error) {
	if !s.IsInitialized() {
		return nil, nextuperrors.NotInitializedError{}
	}
	if SanitizeName(name) == "" {
		return nil, nextuperrors.InvalidProjectNameError{Name: name}
	}
	content, err := os.ReadFile(s.projectPath(name))
	if os.IsNotExist(err) {
		return nil, nextuperrors.ProjectNotFoundError{Name: name}
	}
	if err != nil {
		return nil, err
	}
	return ParseYAML(content)
}

// Save writes a project tree to disk, replacing the file atomically.
func (s *Store) Save(name string, tree *task.Tree) error {
	if !s.IsInitialized() {
		return nextuperrors.NotInitializedError{}
	}
	if SanitizeName(name) == "" {
		return nextuperrors.InvalidProjectNameError{Name: name}
	}
	content, err := SerializeYAML(tree)
	if err != nil {
		return err
	}

	path := s.projectPath(name)
	tmp := path + ".tmp"
	//nolint:gosec // G306: 0644 is appropriate for user-readable task files
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// CreateProject creates a new project whose root task is named name.
func (s *Store) CreateProject(name string) (*task.Tree, error) {
	if !s.IsInitialized() {
		return nil, nextuperrors.NotInitializedError{}
	}
	if SanitizeName(name) == "" {
		return nil, nextuperrors.InvalidProjectNameError{Name: name}
	}
	if s.Exists(name) {
		return nil, nextuperrors.ProjectExistsError{Name: name}
	}

	tree := task.New(name)
	if err := s.Save(name, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Open loads every project into a Repository.
func (s *Store) Open() (*Repository, error) {
	names, err := s.Projects()
	if err != nil {
		return nil, err
	}

	repo := &Repository{store: s}
	for _, name := range names {
		tree, loadErr := s.Load(name)
		if loadErr != nil {
			return nil, loadErr
		}
		repo.projects = append(repo.projects, Project{Name: name, Tree: tree})
	}
	return repo, nil
}
