package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// MissionsColumns holds the columns for the "missions" table.
	MissionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "title", Type: field.TypeString, Unique: true},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "mission_type", Type: field.TypeString},
		{Name: "config", Type: field.TypeJSON},
		{Name: "reward_cash", Type: field.TypeInt, Default: 0},
		{Name: "reward_icon", Type: field.TypeString, Default: ""},
		{Name: "reward_xp", Type: field.TypeInt, Default: 500},
		{Name: "reward_description", Type: field.TypeString, Default: ""},
		{Name: "gem_type", Type: field.TypeString, Default: ""},
		{Name: "gem_size", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	// MissionsTable holds the schema information for the "missions" table.
	MissionsTable = &schema.Table{
		Name:       "missions",
		Columns:    MissionsColumns,
		PrimaryKey: []*schema.Column{MissionsColumns[0]},
	}

	// AssignmentsColumns holds the columns for the "mission_assignments" table.
	AssignmentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "state", Type: field.TypeString},
		{Name: "current_level", Type: field.TypeInt, Default: 0},
		{Name: "notified", Type: field.TypeBool, Default: false},
		{Name: "assigned_at", Type: field.TypeTime},
		{Name: "started_at", Type: field.TypeTime, Nullable: true},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
		{Name: "mission_id", Type: field.TypeInt64},
	}
	// AssignmentsTable holds the schema information for the "mission_assignments" table.
	AssignmentsTable = &schema.Table{
		Name:       "mission_assignments",
		Columns:    AssignmentsColumns,
		PrimaryKey: []*schema.Column{AssignmentsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "mission_assignments_missions_assignments",
				Columns:    []*schema.Column{AssignmentsColumns[8]},
				RefColumns: []*schema.Column{MissionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "assignment_mission_id_user_id",
				Unique:  true,
				Columns: []*schema.Column{AssignmentsColumns[8], AssignmentsColumns[1]},
			},
		},
	}

	// ProgressColumns holds the columns for the "mission_progress" table.
	ProgressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "session_type", Type: field.TypeString},
		{Name: "data", Type: field.TypeJSON},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "duration_seconds", Type: field.TypeInt, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "assignment_id", Type: field.TypeInt64},
	}
	// ProgressTable holds the schema information for the "mission_progress" table.
	ProgressTable = &schema.Table{
		Name:       "mission_progress",
		Columns:    ProgressColumns,
		PrimaryKey: []*schema.Column{ProgressColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "mission_progress_mission_assignments_progress",
				Columns:    []*schema.Column{ProgressColumns[7]},
				RefColumns: []*schema.Column{AssignmentsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "progress_assignment_id_sequence",
				Columns: []*schema.Column{ProgressColumns[7], ProgressColumns[1]},
			},
		},
	}

	// AccountsColumns holds the columns for the "accounts" table.
	AccountsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "user_id", Type: field.TypeString, Unique: true},
		{Name: "cash", Type: field.TypeInt, Default: 0},
		{Name: "xp", Type: field.TypeInt, Default: 0},
		{Name: "level", Type: field.TypeInt, Default: 1},
		{Name: "title", Type: field.TypeString, Default: ""},
		{Name: "icon", Type: field.TypeString, Default: ""},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// AccountsTable holds the schema information for the "accounts" table.
	AccountsTable = &schema.Table{
		Name:       "accounts",
		Columns:    AccountsColumns,
		PrimaryKey: []*schema.Column{AccountsColumns[0]},
	}

	// TransactionsColumns holds the columns for the "ledger_transactions" table.
	TransactionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "amount", Type: field.TypeInt},
		{Name: "balance", Type: field.TypeInt},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	// TransactionsTable holds the schema information for the "ledger_transactions" table.
	TransactionsTable = &schema.Table{
		Name:       "ledger_transactions",
		Columns:    TransactionsColumns,
		PrimaryKey: []*schema.Column{TransactionsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "transaction_user_id",
				Columns: []*schema.Column{TransactionsColumns[2]},
			},
		},
	}

	// HintsColumns holds the columns for the "generated_hints" table.
	HintsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "fact_key", Type: field.TypeString, Unique: true},
		{Name: "hint", Type: field.TypeString},
		{Name: "model", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	// HintsTable holds the schema information for the "generated_hints" table.
	HintsTable = &schema.Table{
		Name:       "generated_hints",
		Columns:    HintsColumns,
		PrimaryKey: []*schema.Column{HintsColumns[0]},
	}

	// LLMRequestsColumns holds the columns for the "llm_requests" table.
	LLMRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	// LLMRequestsTable holds the schema information for the "llm_requests" table.
	LLMRequestsTable = &schema.Table{
		Name:       "llm_requests",
		Columns:    LLMRequestsColumns,
		PrimaryKey: []*schema.Column{LLMRequestsColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		MissionsTable,
		AssignmentsTable,
		ProgressTable,
		AccountsTable,
		TransactionsTable,
		HintsTable,
		LLMRequestsTable,
	}
)

func init() {
	AssignmentsTable.ForeignKeys[0].RefTable = MissionsTable
	ProgressTable.ForeignKeys[0].RefTable = AssignmentsTable
}
