package repository

import (
	"context"
	"database/sql"

	"pipedeck/internal/crm"
)

// LeadRepo handles leads.
type LeadRepo struct {
	db *sql.DB
}

func NewLeadRepo(db *sql.DB) *LeadRepo { return &LeadRepo{db: db} }

func (r *LeadRepo) Insert(ctx context.Context, l crm.Lead) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO leads(id, name, company, email, source, score, status, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, l.ID, l.Name, l.Company, l.Email, l.Source, l.Score, string(l.Status))
	return err
}

func (r *LeadRepo) Update(ctx context.Context, l crm.Lead) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE leads SET name = ?, company = ?, email = ?, source = ?, score = ?, status = ?,
	 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		l.Name, l.Company, l.Email, l.Source, l.Score, string(l.Status), l.ID)
	return err
}

// UpdateTx is Update inside an existing transaction, for writes that must
// land together with an opportunity insert.
func (r *LeadRepo) UpdateTx(ctx context.Context, tx *sql.Tx, l crm.Lead) error {
	_, err := tx.ExecContext(ctx, `
	UPDATE leads SET name = ?, company = ?, email = ?, source = ?, score = ?, status = ?,
	 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		l.Name, l.Company, l.Email, l.Source, l.Score, string(l.Status), l.ID)
	return err
}

func (r *LeadRepo) Get(ctx context.Context, id string) (crm.Lead, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, name, company, email, source, score, status FROM leads WHERE id = ?`, id)
	return scanLead(row)
}

func (r *LeadRepo) List(ctx context.Context) ([]crm.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, company, email, source, score, status FROM leads ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []crm.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LeadRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (crm.Lead, error) {
	var l crm.Lead
	var status string
	if err := row.Scan(&l.ID, &l.Name, &l.Company, &l.Email, &l.Source, &l.Score, &status); err != nil {
		return crm.Lead{}, err
	}
	l.Status = crm.LeadStatus(status)
	return l, nil
}
