package repository

import (
	"context"
	"database/sql"

	"pipedeck/internal/crm"
)

// OpportunityRepo handles opportunities.
type OpportunityRepo struct {
	db *sql.DB
}

func NewOpportunityRepo(db *sql.DB) *OpportunityRepo { return &OpportunityRepo{db: db} }

func (r *OpportunityRepo) Insert(ctx context.Context, o crm.Opportunity) error {
	_, err := r.db.ExecContext(ctx, insertOpportunitySQL,
		o.ID, o.Name, string(o.Stage), o.Amount, o.AccountName, o.LeadID, o.CreatedAt)
	return err
}

// InsertTx is Insert inside an existing transaction.
func (r *OpportunityRepo) InsertTx(ctx context.Context, tx *sql.Tx, o crm.Opportunity) error {
	_, err := tx.ExecContext(ctx, insertOpportunitySQL,
		o.ID, o.Name, string(o.Stage), o.Amount, o.AccountName, o.LeadID, o.CreatedAt)
	return err
}

const insertOpportunitySQL = `
	INSERT INTO opportunities(id, name, stage, amount, account_name, lead_id, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?);
	`

func (r *OpportunityRepo) List(ctx context.Context) ([]crm.Opportunity, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, stage, amount, account_name, lead_id, created_at
	FROM opportunities ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []crm.Opportunity
	for rows.Next() {
		var o crm.Opportunity
		var stage string
		var amount sql.NullFloat64
		if err := rows.Scan(&o.ID, &o.Name, &stage, &amount, &o.AccountName, &o.LeadID, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Stage = crm.Stage(stage)
		if amount.Valid {
			v := amount.Float64
			o.Amount = &v
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OpportunityRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM opportunities`).Scan(&n)
	return n, err
}
