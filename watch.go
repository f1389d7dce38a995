package spritestudio

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is a freshly decoded animation file. Err is set when the file
// could not be read or decoded; the previous data should then be kept.
type Reload struct {
	File FileID
	Path string
	Data *Data
	Err  error
}

// Watcher re-decodes animation documents when they change on disk. It never
// touches a Store itself: the owner applies each Reload with Store.AddData
// between evaluations.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]FileID
	Reloads chan Reload
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the given documents, keyed by the file id they are
// loaded under.
func NewWatcher(files map[FileID]string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	byPath := make(map[string]FileID, len(files))
	dirs := make(map[string]bool)
	for id, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		byPath[abs] = id
		dirs[filepath.Dir(abs)] = true
	}
	// editors replace files, so watch the directories
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		files:   byPath,
		Reloads: make(chan Reload, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching and closes both channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// reloadDelay is how long a file must stay quiet before it is re-decoded.
const reloadDelay = 100 * time.Millisecond

func (w *Watcher) run() {
	defer close(w.Reloads)
	defer close(w.Errors)
	pending := make(map[string]FileID)
	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			id, ok := w.files[abs]
			if !ok {
				continue
			}
			pending[abs] = id
			timer.Reset(reloadDelay)
		case <-timer.C:
			for abs, id := range pending {
				select {
				case w.Reloads <- LoadFile(id, abs):
				case <-w.closeCh:
					return
				}
			}
			clear(pending)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// LoadFile reads and decodes one animation document.
func LoadFile(id FileID, path string) Reload {
	r := Reload{File: id, Path: path}
	src, err := os.ReadFile(path)
	if err != nil {
		r.Err = err
		return r
	}
	r.Data, r.Err = DecodeData(src)
	debugf("loaded file %d from %s (err: %v)", id, path, r.Err)
	return r
}
