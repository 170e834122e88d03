package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// ChangeKind tells a reloader what kind of prefab file changed.
type ChangeKind int

const (
	// SpecChanged is a YAML tuning or level spec.
	SpecChanged ChangeKind = iota + 1
	// ScenarioChanged is a tengo scenario script.
	ScenarioChanged
)

func (k ChangeKind) String() string {
	switch k {
	case SpecChanged:
		return "spec"
	case ScenarioChanged:
		return "scenario"
	default:
		return "unknown"
	}
}

// Change is one debounced edit to a prefab file. Removed is set when the file
// was deleted or renamed away, in which case there is nothing to reload.
type Change struct {
	Path    string
	Kind    ChangeKind
	Removed bool
}

// Name is the file name relative to its prefab directory, as LoadSpec and
// LoadScenario expect it.
func (c Change) Name() string {
	return filepath.Base(c.Path)
}

// Watcher streams edits to tuning specs and scenario scripts so a running
// simulation can re-apply them. Writes to one file closer together than
// debounce are reported once.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the given directories, typically Dir and its scenarios
// subdirectory. It fails if any directory cannot be watched.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes Changes and Errors. Calling it again is a no-op.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Changes)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			change, ok := classifyEvent(event)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[change.Path]; seen && now.Sub(t) < debounce && !change.Removed {
				continue
			}
			last[change.Path] = now

			select {
			case w.Changes <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// a slow reader only misses errors, never changes
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classifyEvent(event fsnotify.Event) (Change, bool) {
	var kind ChangeKind
	switch {
	case isSpecFile(event.Name):
		kind = SpecChanged
	case isScenarioFile(event.Name):
		kind = ScenarioChanged
	default:
		return Change{}, false
	}

	switch {
	case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create):
		return Change{Path: event.Name, Kind: kind}, true
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return Change{Path: event.Name, Kind: kind, Removed: true}, true
	default:
		return Change{}, false
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScenarioFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
