// Package file provides a startup-parameter source backed by a local file.
//
// The file is decoded with a vista.Codec chosen from its extension (.json,
// .yaml/.yml or .toml) and re-read whenever it is written. The parent
// directory is watched rather than the file itself so editors that save by
// renaming a temporary file are picked up too.
package file

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/zoobzio/vista"
)

// Watcher emits the parameters stored in a file each time the file changes.
type Watcher struct {
	path  string
	codec vista.Codec
	log   zerolog.Logger
}

// New creates a Watcher for path with a codec picked by vista.CodecForPath.
func New(path string) *Watcher {
	return &Watcher{
		path:  path,
		codec: vista.CodecForPath(path),
		log:   zerolog.Nop(),
	}
}

// Codec overrides the codec used to decode the file.
func (w *Watcher) Codec(codec vista.Codec) *Watcher {
	w.codec = codec
	return w
}

// Logger sets the logger used to report files that fail to decode.
func (w *Watcher) Logger(log zerolog.Logger) *Watcher {
	w.log = log
	return w
}

// Load reads and decodes the file once.
func (w *Watcher) Load() (vista.Params, error) {
	raw, err := os.ReadFile(w.path)
	if err != nil {
		return vista.Params{}, fmt.Errorf("read params file %s: %w", w.path, err)
	}
	return vista.DecodeParams(raw, w.codec)
}

// Watch returns a channel that emits the current parameters immediately and
// then every time the file is rewritten with different, decodable content.
// Contents that fail to decode are logged and skipped; the last good
// parameters stay in effect. The channel is closed when ctx is canceled.
func (w *Watcher) Watch(ctx context.Context) (<-chan vista.Params, error) {
	initial, err := w.Load()
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	out := make(chan vista.Params)
	go func() {
		defer close(out)
		defer watcher.Close()

		last, _ := os.ReadFile(w.path)
		select {
		case out <- initial:
		case <-ctx.Done():
			return
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(w.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				raw, err := os.ReadFile(w.path)
				// Truncate-then-write saves surface an empty file first.
				if err != nil || len(raw) == 0 || bytes.Equal(raw, last) {
					continue
				}
				params, err := vista.DecodeParams(raw, w.codec)
				if err != nil {
					w.log.Warn().Err(err).Str("path", w.path).Msg("ignoring invalid params file")
					continue
				}
				last = raw

				select {
				case out <- params:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn().Err(err).Str("path", w.path).Msg("params watch error")
			}
		}
	}()

	return out, nil
}
