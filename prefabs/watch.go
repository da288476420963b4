package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports prefab and script files changed on disk, debounced per
// file.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// DefaultDirs are the on-disk prefab directories that hold reloadable files.
func DefaultDirs() []string {
	return []string{"prefabs", filepath.Join("prefabs", "ramps"), filepath.Join("prefabs", "scripts")}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll returns changed paths without blocking, for use from a frame loop.
func (w *Watcher) Poll() []string {
	if w == nil {
		return nil
	}
	var out []string
	for {
		select {
		case name := <-w.Events:
			out = append(out, name)
		default:
			return out
		}
	}
}

// debounceWindow drops repeat events for the same file.
const debounceWindow = 100 * time.Millisecond

type debouncer struct {
	window time.Duration
	seen   map[string]time.Time
}

func (d *debouncer) allow(name string, now time.Time) bool {
	if t, ok := d.seen[name]; ok && now.Sub(t) < d.window {
		return false
	}
	d.seen[name] = now
	return true
}

// reloadable reports events that may change a prefab or script's contents.
func reloadable(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	return isSpecFile(event.Name) || isScriptFile(event.Name)
}

func (w *Watcher) run() {
	d := &debouncer{window: debounceWindow, seen: make(map[string]time.Time)}
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if reloadable(event) && d.allow(event.Name, time.Now()) && !w.forward(event.Name) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

// forward hands a path to Poll, giving up once the watcher is closed.
func (w *Watcher) forward(name string) bool {
	select {
	case w.Events <- name:
		return true
	case <-w.closeCh:
		return false
	}
}

// report keeps the first unread error and drops the rest.
func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".tengo"
}
