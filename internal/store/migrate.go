package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableLearnerRecords   = "learner_records"
	tableProgressEvents   = "progress_events"
	tableProfileSnapshots = "profile_snapshots"
	tableLLMRequests      = "llm_requests"
	tableMeta             = "meta"
)

var (
	// LearnerRecordsColumns holds the columns for the "learner_records" table.
	LearnerRecordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "archetype", Type: field.TypeString, Default: ""},
		{Name: "data", Type: field.TypeJSON},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// LearnerRecordsTable holds the schema information for the "learner_records" table.
	LearnerRecordsTable = &schema.Table{
		Name:       tableLearnerRecords,
		Columns:    LearnerRecordsColumns,
		PrimaryKey: []*schema.Column{LearnerRecordsColumns[0]},
	}

	// ProgressEventsColumns holds the columns for the "progress_events" table.
	ProgressEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "skill_id", Type: field.TypeString},
		{Name: "level", Type: field.TypeString},
		{Name: "confidence", Type: field.TypeInt},
		{Name: "learner_id", Type: field.TypeString},
	}
	// ProgressEventsTable holds the schema information for the "progress_events" table.
	ProgressEventsTable = &schema.Table{
		Name:       tableProgressEvents,
		Columns:    ProgressEventsColumns,
		PrimaryKey: []*schema.Column{ProgressEventsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "progress_events_learner_records_progress",
				Columns:    []*schema.Column{ProgressEventsColumns[6]},
				RefColumns: []*schema.Column{LearnerRecordsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "progressevent_learner_id_timestamp",
				Columns: []*schema.Column{ProgressEventsColumns[6], ProgressEventsColumns[2]},
			},
		},
	}

	// ProfileSnapshotsColumns holds the columns for the "profile_snapshots" table.
	ProfileSnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "catalog_version", Type: field.TypeString, Default: ""},
		{Name: "data", Type: field.TypeJSON},
		{Name: "learner_id", Type: field.TypeString},
	}
	// ProfileSnapshotsTable holds the schema information for the "profile_snapshots" table.
	ProfileSnapshotsTable = &schema.Table{
		Name:       tableProfileSnapshots,
		Columns:    ProfileSnapshotsColumns,
		PrimaryKey: []*schema.Column{ProfileSnapshotsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "profile_snapshots_learner_records_snapshots",
				Columns:    []*schema.Column{ProfileSnapshotsColumns[5]},
				RefColumns: []*schema.Column{LearnerRecordsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "profilesnapshot_learner_id_timestamp",
				Columns: []*schema.Column{ProfileSnapshotsColumns[5], ProfileSnapshotsColumns[2]},
			},
		},
	}

	// LlmRequestsColumns holds the columns for the "llm_requests" table.
	LlmRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestsTable holds the schema information for the "llm_requests" table.
	LlmRequestsTable = &schema.Table{
		Name:       tableLLMRequests,
		Columns:    LlmRequestsColumns,
		PrimaryKey: []*schema.Column{LlmRequestsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequest_purpose", Columns: []*schema.Column{LlmRequestsColumns[5]}},
			{Name: "llmrequest_success", Columns: []*schema.Column{LlmRequestsColumns[9]}},
		},
	}

	// MetaColumns holds the columns for the "meta" table.
	MetaColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString},
	}
	// MetaTable holds the schema information for the "meta" table.
	MetaTable = &schema.Table{
		Name:       tableMeta,
		Columns:    MetaColumns,
		PrimaryKey: []*schema.Column{MetaColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		LearnerRecordsTable,
		ProgressEventsTable,
		ProfileSnapshotsTable,
		LlmRequestsTable,
		MetaTable,
	}
)

func init() {
	ProgressEventsTable.ForeignKeys[0].RefTable = LearnerRecordsTable
	ProfileSnapshotsTable.ForeignKeys[0].RefTable = LearnerRecordsTable
}

// migrate creates or upgrades all tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("store/migrate: %w", err)
	}
	return m.Create(ctx, Tables...)
}
