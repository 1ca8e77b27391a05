package store

import (
	"context"
	"time"

	"github.com/abhisek/pathwise/internal/learner"
	"github.com/abhisek/pathwise/internal/profile"
)

// RecordSummary is a listing row for a stored learner record.
type RecordSummary struct {
	ID        string
	Archetype string
	UpdatedAt time.Time
}

// RecordRepo stores learner records, keyed by learner id.
type RecordRepo interface {
	// Save inserts or replaces a record.
	Save(ctx context.Context, rec learner.Record) error

	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id string) (learner.Record, error)

	// List returns all stored records, most recently updated first.
	List(ctx context.Context) ([]RecordSummary, error)
}

// ProgressEvent is one explicit progress update for a learner's skill.
type ProgressEvent struct {
	ID         int64
	Sequence   int64
	Timestamp  time.Time
	LearnerID  string
	SkillID    string
	Level      profile.Level
	Confidence int
}

// ProgressRepo is the append-only log of progress updates.
type ProgressRepo interface {
	// Append records an event and returns it with its id and sequence set.
	// A zero Timestamp is replaced with the current time.
	Append(ctx context.Context, ev ProgressEvent) (ProgressEvent, error)

	// ForLearner returns a learner's events in timestamp order.
	ForLearner(ctx context.Context, learnerID string) ([]ProgressEvent, error)
}

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version        int                    `json:"version"`
	CatalogVersion string                 `json:"catalogVersion"`
	Profile        profile.LearnerProfile `json:"profile"`
}

// SnapshotVersion is the current SnapshotData layout version.
const SnapshotVersion = 1

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        string
	LearnerID string
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner profile snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. Empty ID, zero Sequence and zero
	// Timestamp are filled in.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the learner's most recent snapshot, or nil if none exist.
	Latest(ctx context.Context, learnerID string) (*Snapshot, error)

	// Prune deletes all but the keep most recent snapshots of a learner.
	Prune(ctx context.Context, learnerID string, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentLLMRequests returns up to limit events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)
}

// MetaRepo is a small key/value table for installation-wide settings.
type MetaRepo interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error
}

// MetaCatalogVersion records the highest catalog version this database has
// been used with.
const MetaCatalogVersion = "catalog_version"
