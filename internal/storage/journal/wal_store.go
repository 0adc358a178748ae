// Package journal persists publish timestamps in a WAL so signal and watch
// cooldowns survive restarts. It stores delivery events only, never plans.
package journal

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
)

const (
	DefaultDir = "./wal/journal"

	segmentLimit = 1000
	maxSegments  = 10

	publishStateKeyPrefix = "publish_state_"
)

// PublishState last known publish timestamps for one instrument.
type PublishState struct {
	TickID     string    `json:"tick_id,omitempty"`
	LastSignal time.Time `json:"last_signal"`
	LastWatch  time.Time `json:"last_watch"`
}

// WALStore persists publish state in a WAL.
type WALStore struct {
	wal   *gowal.Wal
	mu    sync.RWMutex
	key   string
	state PublishState
}

// NewWALStore opens (or creates) the journal for the given symbol and
// recovers the latest publish state from the log.
func NewWALStore(dir, symbol string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "journal_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init publish journal WAL")
	}

	s := &WALStore{
		wal: wal,
		key: fmt.Sprintf("%s%s", publishStateKeyPrefix, symbol),
	}

	for msg := range wal.Iterator() {
		if msg.Key != s.key {
			continue
		}
		var state PublishState
		if err := json.Unmarshal(msg.Value, &state); err != nil {
			// Skip torn records, keep the last parsable state.
			continue
		}
		s.state = state
	}

	return s, nil
}

// State returns the recovered publish state.
func (s *WALStore) State() PublishState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// MarkSignal records a signal publish at the given time.
func (s *WALStore) MarkSignal(tickID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TickID = tickID
	s.state.LastSignal = at
	return s.write()
}

// MarkWatch records a watch-report publish at the given time.
func (s *WALStore) MarkWatch(tickID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TickID = tickID
	s.state.LastWatch = at
	return s.write()
}

func (s *WALStore) write() error {
	if s.wal == nil {
		return errors.New("publish journal is not initialized")
	}
	payload, err := json.Marshal(s.state)
	if err != nil {
		return errors.Wrap(err, "marshal publish state")
	}
	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, s.key, payload)
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wal == nil {
		return nil
	}
	return s.wal.Close()
}
