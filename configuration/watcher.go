// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher - report writes to one configuration file
//
// the directory is watched rather than the file so that editors which
// replace the file are still seen
type Watcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	change   chan struct{}
}

// NewWatcher - watch fileName, call Run to start delivering events
func NewWatcher(log *logger.L, fileName string) (*Watcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	if !FileExists(filePath) {
		log.Errorf("watch: %q does not exist", filePath)
		return nil, fmt.Errorf("configuration: %q does not exist", filePath)
	}

	w, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	if err := w.Add(filepath.Dir(filePath)); nil != err {
		_ = w.Close()
		return nil, err
	}

	return &Watcher{
		log:      log,
		watcher:  w,
		filePath: filePath,
		change:   make(chan struct{}, 1),
	}, nil
}

// Change - receives one value per burst of changes
func (w *Watcher) Change() <-chan struct{} {
	return w.change
}

// Run - background process loop
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	log.Infof("watching: %q", w.filePath)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.filePath {
				continue loop
			}
			if !isChange(event) {
				continue loop
			}
			log.Debugf("file event: %v", event)

			// one pending notification is enough
			select {
			case w.change <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watch error: %s", err)
		}
	}

	_ = w.watcher.Close()
	log.Info("stopped")
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}
