// Package state persists the per-application update records.
package state

import (
	"github.com/glkt/upkeep/internal/logger"
	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/utils"
)

// Store is an in-memory id -> UpdateRecord mapping flushed to a JSON file
// exactly once per run. Concurrent invocations against the same file are
// unsafe by design; there is no lock around the load-modify-persist cycle.
type Store struct {
	path    string
	records map[string]*models.UpdateRecord
}

// Load reads the state file best-effort: a missing or corrupt file yields an
// empty store and the run proceeds as if nothing was ever updated.
func Load(path string) *Store {
	s := &Store{
		path:    path,
		records: make(map[string]*models.UpdateRecord),
	}

	if err := utils.FileReader(path, utils.FileTypeJSON, &s.records); err != nil {
		logger.Debug("state file unusable, starting empty: %v", err)
		s.records = make(map[string]*models.UpdateRecord)
	}
	return s
}

// Get returns a copy of the record for id (zero value when absent).
func (s *Store) Get(id string) models.UpdateRecord {
	if rec, ok := s.records[id]; ok {
		return *rec
	}
	return models.UpdateRecord{}
}

func (s *Store) SetUpdateDate(id, date string) {
	s.record(id).UpdateDate = date
}

func (s *Store) SetHash(id, hash string) {
	s.record(id).Hash = hash
}

func (s *Store) SetTagName(id, tag string) {
	s.record(id).TagName = tag
}

// Persist serializes the full mapping, keys sorted, overwriting prior
// content. Called once, after all buckets are processed.
func (s *Store) Persist() error {
	return utils.CreateFile(s.path, s.records, utils.FileTypeJSON, 0o644)
}

func (s *Store) record(id string) *models.UpdateRecord {
	rec, ok := s.records[id]
	if !ok {
		rec = &models.UpdateRecord{}
		s.records[id] = rec
	}
	return rec
}
