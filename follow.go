package main

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/shiroinock/pretty-history-for-claude-code/parser"
)

// followDebounce coalesces bursts of filesystem events. The producer
// appends several lines per turn; one drain per burst is enough.
const followDebounce = 500 * time.Millisecond

// follower tails one growing session file, rendering records as they
// appear. One follower handles both the initial pass and every subsequent
// drain, so the renderer's pairing state carries across appends and tool
// results arriving later still nest under calls rendered earlier.
type follower struct {
	path     string
	offset   int64
	ren      *Renderer
	sink     *Sink
	warn     parser.WarnFunc
	bannered bool
}

// drain decodes everything past the current offset and writes it out. The
// tail decoder leaves a trailing line that has no newline yet uncounted
// and unread, so a record torn across appends is picked up whole on the
// next drain instead of being warned about in pieces.
func (f *follower) drain() error {
	file, err := os.Open(f.path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return err
	}

	d := parser.NewTailDecoder(file, f.warn)
	for {
		rec, ok := d.Next()
		if !ok {
			break
		}
		if !f.bannered {
			if err := f.sink.WriteBlock(f.ren.Banner(rec.Cwd)); err != nil {
				return err
			}
			f.bannered = true
		}
		if err := f.sink.WriteBlock(f.ren.Render(rec)); err != nil {
			return err
		}
	}
	if err := d.Err(); err != nil {
		return err
	}
	f.offset += d.BytesRead()
	return nil
}

// run watches the session file until interrupted. Truncation (a rewritten
// session) resets the offset and replays from the top.
func (f *follower) run() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and the producer both
	// replace files, and a watch on the old inode goes quiet.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	debounce := time.NewTimer(followDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-sig:
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(f.path) {
				continue
			}
			if !pending {
				pending = true
				debounce.Reset(followDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)

		case <-debounce.C:
			pending = false
			if info, err := os.Stat(f.path); err == nil && info.Size() < f.offset {
				log.Debug("file truncated, replaying", "path", f.path)
				f.offset = 0
			}
			if err := f.drain(); err != nil {
				return err
			}
		}
	}
}
