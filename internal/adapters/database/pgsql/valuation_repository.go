package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
)

// PgxValuationRepository persists valuation entries. The derived columns
// (final_shares, total_value) are stored as computed by the domain layer.
type PgxValuationRepository struct {
	db *pgxpool.Pool
}

func newPgxValuationRepository(db *pgxpool.Pool) portsrepo.ValuationRepositoryFacade {
	return &PgxValuationRepository{db: db}
}

var _ portsrepo.ValuationRepositoryFacade = (*PgxValuationRepository)(nil)

const selectValuationFields = `
	entry_id, case_id, client_name, company_name, new_company_name,
	original_shares, bonus, split, final_shares,
	folio_number, value_per_share, total_value,
	rta, rta_mail, is_original_certificate,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanValuationEntry(row pgx.Row) (*domain.ValuationEntry, error) {
	var e domain.ValuationEntry
	err := row.Scan(
		&e.EntryID,
		&e.CaseID,
		&e.ClientName,
		&e.CompanyName,
		&e.NewCompanyName,
		&e.OriginalShares,
		&e.Bonus,
		&e.Split,
		&e.FinalShares,
		&e.FolioNumber,
		&e.ValuePerShare,
		&e.TotalValue,
		&e.RTA,
		&e.RTAMail,
		&e.IsOriginalCertificate,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PgxValuationRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.ValuationEntry, error) {
	query := `SELECT ` + selectValuationFields + ` FROM valuation_entries WHERE entry_id = $1;`
	e, err := scanValuationEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find valuation entry by ID: %w", err)
	}
	return e, nil
}

func (r *PgxValuationRepository) FindEntriesByCase(ctx context.Context, caseID string) ([]domain.ValuationEntry, error) {
	query := `SELECT ` + selectValuationFields + ` FROM valuation_entries WHERE case_id = $1 ORDER BY created_at;`
	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query valuation entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.ValuationEntry{}
	for rows.Next() {
		e, err := scanValuationEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan valuation entry row: %w", err)
		}
		entries = append(entries, *e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating valuation entry rows: %w", rows.Err())
	}

	return entries, nil
}

func (r *PgxValuationRepository) SaveEntry(ctx context.Context, entry domain.ValuationEntry) error {
	query := `
		INSERT INTO valuation_entries (
			entry_id, case_id, client_name, company_name, new_company_name,
			original_shares, bonus, split, final_shares,
			folio_number, value_per_share, total_value,
			rta, rta_mail, is_original_certificate,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.db.Exec(ctx, query,
		entry.EntryID,
		entry.CaseID,
		entry.ClientName,
		entry.CompanyName,
		entry.NewCompanyName,
		entry.OriginalShares,
		entry.Bonus,
		entry.Split,
		entry.FinalShares,
		entry.FolioNumber,
		entry.ValuePerShare,
		entry.TotalValue,
		entry.RTA,
		entry.RTAMail,
		entry.IsOriginalCertificate,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save valuation entry: %w", err)
	}
	return nil
}

func (r *PgxValuationRepository) UpdateEntry(ctx context.Context, entry domain.ValuationEntry) error {
	query := `
		UPDATE valuation_entries
		SET client_name = $1, company_name = $2, new_company_name = $3,
			original_shares = $4, bonus = $5, split = $6, final_shares = $7,
			folio_number = $8, value_per_share = $9, total_value = $10,
			rta = $11, rta_mail = $12, is_original_certificate = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE entry_id = $16;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		entry.ClientName,
		entry.CompanyName,
		entry.NewCompanyName,
		entry.OriginalShares,
		entry.Bonus,
		entry.Split,
		entry.FinalShares,
		entry.FolioNumber,
		entry.ValuePerShare,
		entry.TotalValue,
		entry.RTA,
		entry.RTAMail,
		entry.IsOriginalCertificate,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		entry.EntryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update valuation entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxValuationRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM valuation_entries WHERE entry_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete valuation entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
