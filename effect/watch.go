package effect

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/botview/core"
	"github.com/lixenwraith/botview/parameter"
)

// Watcher reloads a catalog override file when it changes on disk
// Each burst of writes yields one reload on Catalogs, or an error on Errors
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	Catalogs chan *Catalog
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewWatcher watches the directory holding path so editor rename-and-replace saves are seen
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		Catalogs: make(chan *Catalog, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	core.Go(w.run)
	return w, nil
}

// Close stops watching and closes the output channels
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Catalogs)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			debounce.Reset(parameter.CatalogDebounce)
		case <-debounce.C:
			c, err := LoadCatalog(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(c, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

// send delivers the newest result, replacing any undelivered one
func (w *Watcher) send(c *Catalog, err error) {
	if err != nil {
		select {
		case w.Errors <- err:
		default:
		}
		return
	}
	for {
		select {
		case w.Catalogs <- c:
			return
		case <-w.closeCh:
			return
		default:
			select {
			case <-w.Catalogs:
			default:
			}
		}
	}
}
