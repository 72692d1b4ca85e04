//nolint:testpackage // Tests require internal access for thorough testing
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	nextuperrors "github.com/abatilo/nextup/internal/errors"
	"github.com/abatilo/nextup/internal/task"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), ".nextup"))
	if err := store.Init(false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestStoreOperations(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), ".nextup")
	store := NewStore(basePath)

	// Test init
	if store.IsInitialized() {
		t.Error("Store should not be initialized yet")
	}
	if err := store.Init(false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !store.IsInitialized() {
		t.Error("Store should be initialized")
	}
	var already nextuperrors.AlreadyInitializedError
	if err := store.Init(false); !errors.As(err, &already) {
		t.Errorf("second Init error = %v, want AlreadyInitializedError", err)
	}
	if err := store.Init(true); err != nil {
		t.Errorf("forced Init failed: %v", err)
	}

	// Test create project
	tree, err := store.CreateProject("Home Renovation")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if tree.Root().Name() != "Home Renovation" {
		t.Errorf("root name = %q, want %q", tree.Root().Name(), "Home Renovation")
	}
	if _, err = os.Stat(filepath.Join(basePath, "projects", "home-renovation.yaml")); err != nil {
		t.Errorf("project file missing: %v", err)
	}
	if !store.Exists("home renovation") {
		t.Error("Exists should match the sanitized name")
	}

	// Test save and load
	p := tree.BeginEdit()
	tree.Root().CreateAsLastChild(p, task.NewAttr("Paint"))
	p.Release()
	if err = store.Save("Home Renovation", tree); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err = os.Stat(filepath.Join(basePath, "projects", "home-renovation.yaml.tmp")); !os.IsNotExist(err) {
		t.Error("Save should not leave a temporary file behind")
	}

	loaded, err := store.Load("home-renovation")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Root().Equal(tree.Root()) {
		t.Error("Loaded tree differs from saved tree")
	}

	// Test list
	if _, err = store.CreateProject("work"); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	names, err := store.Projects()
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}
	if len(names) != 2 || names[0] != "home-renovation" || names[1] != "work" {
		t.Errorf("Projects = %v, want [home-renovation work]", names)
	}
}

func TestOpenIgnoresDataDirFiles(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.CreateProject("home"); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	files := map[string]string{
		"config.yaml": "timezone: UTC\n",
		"busy.yaml":   "- weekday: Mon\n  busy:\n    - start: \"09:00\"\n      duration: 30\n      label: standup\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(store.BasePath(), name), []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	repo, err := store.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	projects := repo.Projects()
	if len(projects) != 1 || projects[0].Name != "home" {
		var got []string
		for _, p := range projects {
			got = append(got, p.Name)
		}
		t.Errorf("projects = %v, want [home]", got)
	}
}

func TestInitWithExistingDataDir(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte("timezone: UTC\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store := NewStore(dataDir)
	if store.IsInitialized() {
		t.Error("A data dir holding only config should not count as initialized")
	}
	if err := store.Init(false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !store.IsInitialized() {
		t.Error("Store should be initialized")
	}
}

func TestOpenCorruptProject(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(filepath.Join(store.ProjectsPath(), "broken.yaml"), []byte("- a\n- b\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var parseErr ParseError
	if _, err := store.Open(); !errors.As(err, &parseErr) {
		t.Errorf("Open error = %v, want ParseError", err)
	}
}

func TestStoreErrors(t *testing.T) {
	t.Run("not initialized", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "missing"))
		var notInit nextuperrors.NotInitializedError
		if _, err := store.Projects(); !errors.As(err, &notInit) {
			t.Errorf("Projects error = %v, want NotInitializedError", err)
		}
		if _, err := store.Load("home"); !errors.As(err, &notInit) {
			t.Errorf("Load error = %v, want NotInitializedError", err)
		}
		if err := store.Save("home", task.New("home")); !errors.As(err, &notInit) {
			t.Errorf("Save error = %v, want NotInitializedError", err)
		}
		if _, err := store.CreateProject("home"); !errors.As(err, &notInit) {
			t.Errorf("CreateProject error = %v, want NotInitializedError", err)
		}
	})

	t.Run("duplicate project", func(t *testing.T) {
		store := newTestStore(t)
		if _, err := store.CreateProject("home"); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
		var exists nextuperrors.ProjectExistsError
		if _, err := store.CreateProject("HOME"); !errors.As(err, &exists) {
			t.Errorf("error = %v, want ProjectExistsError", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		store := newTestStore(t)
		var invalid nextuperrors.InvalidProjectNameError
		if _, err := store.CreateProject("!!!"); !errors.As(err, &invalid) {
			t.Errorf("error = %v, want InvalidProjectNameError", err)
		}
	})

	t.Run("missing project", func(t *testing.T) {
		store := newTestStore(t)
		var notFound nextuperrors.ProjectNotFoundError
		if _, err := store.Load("nowhere"); !errors.As(err, &notFound) {
			t.Errorf("error = %v, want ProjectNotFoundError", err)
		}
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple name", "home", "home"},
		{"mixed case", "HomeOffice", "homeoffice"},
		{"name with spaces", "Home Renovation", "home-renovation"},
		{"special chars", "my.project-v2!", "my-project-v2"},
		{"path separators", "../etc/passwd", "etc-passwd"},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func addWithID(t *testing.T, parent task.Task, name, id string) task.Task {
	t.Helper()
	attr := task.NewAttr(name)
	attr.ID = uuid.MustParse(id)
	p := parent.Tree().BeginEdit()
	defer p.Release()
	return parent.CreateAsLastChild(p, attr)
}

func TestRepositoryFind(t *testing.T) {
	store := newTestStore(t)
	home, err := store.CreateProject("home")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	work, err := store.CreateProject("work")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	addWithID(t, home.Root(), "Paint", "aaa00000-0000-4000-8000-000000000001")
	addWithID(t, work.Root(), "Report", "aaa11111-0000-4000-8000-000000000002")
	addWithID(t, work.Root(), "Email", "bbb22222-0000-4000-8000-000000000003")
	if err = store.Save("home", home); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err = store.Save("work", work); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	repo, err := store.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(repo.Roots()) != 2 {
		t.Fatalf("Roots = %d, want 2", len(repo.Roots()))
	}

	project, found, err := repo.Find("bbb2")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if project.Name != "work" || found.Name() != "Email" {
		t.Errorf("Find(bbb2) = (%s, %s), want (work, Email)", project.Name, found.Name())
	}

	if _, found, err = repo.Find("aaa00000-0000-4000-8000-000000000001"); err != nil || found.Name() != "Paint" {
		t.Errorf("Find(full id) = (%v), want Paint", err)
	}

	var ambiguous nextuperrors.AmbiguousIDError
	if _, _, err = repo.Find("aaa"); !errors.As(err, &ambiguous) {
		t.Errorf("Find(aaa) error = %v, want AmbiguousIDError", err)
	} else if len(ambiguous.Matches) != 2 {
		t.Errorf("matches = %v, want 2", ambiguous.Matches)
	}

	var notFound nextuperrors.TaskNotFoundError
	if _, _, err = repo.Find("zzz"); !errors.As(err, &notFound) {
		t.Errorf("Find(zzz) error = %v, want TaskNotFoundError", err)
	}

	var short nextuperrors.ShortIDError
	if _, _, err = repo.Find("aa"); !errors.As(err, &short) {
		t.Errorf("Find(aa) error = %v, want ShortIDError", err)
	}
}

func TestRepositorySyncClockAndSave(t *testing.T) {
	store := newTestStore(t)
	tree, err := store.CreateProject("home")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	attr := task.NewAttr("Call plumber")
	attr.SetOrigStatus(task.StatusPending)
	attr.SetPendingUntil(time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local))
	p := tree.BeginEdit()
	tree.Root().CreateAsLastChild(p, attr)
	p.Release()
	if err = store.Save("home", tree); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	repo, err := store.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	project, err := repo.Project("Home")
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	call := project.Tree.Root().Children()[0]

	repo.SyncClock(time.Date(2024, 3, 1, 11, 0, 0, 0, time.Local))
	if call.Status() != task.StatusPending {
		t.Errorf("status before deadline = %v, want pending", call.Status())
	}
	repo.SyncClock(time.Date(2024, 3, 1, 13, 0, 0, 0, time.Local))
	if call.Status() != task.StatusTodo {
		t.Errorf("status after deadline = %v, want todo", call.Status())
	}

	call.SetOrigStatus(task.StatusDone)
	if err = repo.Save(project); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	reloaded, err := store.Load("home")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := reloaded.Root().Children()[0].Status(); got != task.StatusDone {
		t.Errorf("reloaded status = %v, want done", got)
	}

	var notFound nextuperrors.ProjectNotFoundError
	if _, err = repo.Project("garden"); !errors.As(err, &notFound) {
		t.Errorf("Project(garden) error = %v, want ProjectNotFoundError", err)
	}
}
