/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/valpere/waitlist/internal/form"
	"github.com/valpere/waitlist/internal/messages"
	"github.com/valpere/waitlist/internal/store"
	"github.com/valpere/waitlist/internal/submitter"
	"github.com/valpere/waitlist/internal/waitlist"
)

// session holds what every submitting command shares: the client, the
// resolved base URL, the message printer and, when history is on, the journal.
type session struct {
	client  *waitlist.Client
	baseURL string
	msgs    *messages.Printer
	db      *store.Store
}

func openSession() (*session, error) {
	s := &session{
		client:  waitlist.NewClient(cfg.Timeout),
		baseURL: cfg.BaseURL(),
		msgs:    messages.New(cfg.Lang),
	}

	if cfg.History && cfg.DBPath != "" {
		db, err := openStore(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		s.db = db
	}

	logger.Debug("Session ready",
		zap.String("base_url", s.baseURL),
		zap.Stringer("lang", s.msgs.Lang()),
		zap.Bool("history", s.db != nil))
	return s, nil
}

func (s *session) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Warn("Failed to close journal", zap.Error(err))
		}
	}
}

// submitter builds a Submitter for f with the session's logger, messages and
// journal. extra options are applied last.
func (s *session) submitter(f form.Form, extra ...submitter.Option) *submitter.Submitter {
	opts := []submitter.Option{
		submitter.WithLogger(logger),
		submitter.WithMessages(s.msgs),
	}
	if s.db != nil {
		opts = append(opts, submitter.WithRecorder(s.db))
	}
	opts = append(opts, extra...)

	return submitter.New(s.client, s.baseURL, f, opts...)
}

// openStore opens the journal, creating its directory when needed.
func openStore(dbPath string) (*store.Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
