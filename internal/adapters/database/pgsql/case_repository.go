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
	"github.com/sharesarthi/share_recovery_crm/internal/utils/pagination"
)

// PgxCaseRepository persists cases, their shareholder lists (as a text array)
// and the per-company KYC entries. Assignment runs in a transaction because it
// touches both the case row and two user counters.
type PgxCaseRepository struct {
	BaseRepository
}

func newPgxCaseRepository(db *pgxpool.Pool) portsrepo.CaseRepositoryFacade {
	return &PgxCaseRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CaseRepositoryFacade = (*PgxCaseRepository)(nil)

const selectCaseFields = `
	case_id, name, contact_person, mobile, alternate_mobile, email, folios,
	case_type, lead_source, status, shareholders, old_address, new_address,
	demat_created, assigned_rm, assigned_field_boy, assignment_timestamp,
	expenditure, valuation_completed_at, version,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCase(row pgx.Row) (*domain.Case, error) {
	var c domain.Case
	err := row.Scan(
		&c.CaseID,
		&c.Name,
		&c.ContactPerson,
		&c.Mobile,
		&c.AlternateMobile,
		&c.Email,
		&c.Folios,
		&c.CaseType,
		&c.LeadSource,
		&c.Status,
		&c.Shareholders,
		&c.OldAddress,
		&c.NewAddress,
		&c.DematCreated,
		&c.AssignedRM,
		&c.AssignedFieldBoy,
		&c.AssignmentTimestamp,
		&c.Expenditure,
		&c.ValuationCompletedAt,
		&c.Version,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxCaseRepository) SaveCase(ctx context.Context, c domain.Case) error {
	query := `
		INSERT INTO cases (
			case_id, name, contact_person, mobile, alternate_mobile, email, folios,
			case_type, lead_source, status, shareholders, old_address, new_address,
			demat_created, expenditure, version,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		c.CaseID,
		c.Name,
		c.ContactPerson,
		c.Mobile,
		c.AlternateMobile,
		c.Email,
		c.Folios,
		c.CaseType,
		c.LeadSource,
		c.Status,
		c.Shareholders,
		c.OldAddress,
		c.NewAddress,
		c.DematCreated,
		c.Expenditure,
		c.Version,
		c.CreatedAt,
		c.CreatedBy,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save case: %w", err)
	}
	return nil
}

func (r *PgxCaseRepository) FindCaseByID(ctx context.Context, caseID string) (*domain.Case, error) {
	query := `SELECT ` + selectCaseFields + ` FROM cases WHERE case_id = $1;`
	c, err := scanCase(r.Pool.QueryRow(ctx, query, caseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find case by ID: %w", err)
	}
	return c, nil
}

// ListCases pages newest first on created_at using an opaque date token.
func (r *PgxCaseRepository) ListCases(ctx context.Context, filter portsrepo.CaseFilter, limit int, pageToken string) ([]domain.Case, string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + selectCaseFields + `
		FROM cases
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::text IS NULL OR assigned_rm = $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC
		LIMIT $4;
	`

	var statusArg, rmArg *string
	if filter.Status != nil {
		s := string(*filter.Status)
		statusArg = &s
	}
	if filter.AssignedRM != nil {
		rmArg = filter.AssignedRM
	}

	var beforeArg interface{}
	if pageToken != "" {
		before, err := pagination.DecodeDateBasedToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		beforeArg = before
	}

	// Fetch one extra row to know whether another page exists.
	rows, err := r.Pool.Query(ctx, query, statusArg, rmArg, beforeArg, limit+1)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query cases: %w", err)
	}
	defer rows.Close()

	cases := []domain.Case{}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan case row: %w", err)
		}
		cases = append(cases, *c)
	}
	if rows.Err() != nil {
		return nil, "", fmt.Errorf("error iterating case rows: %w", rows.Err())
	}

	nextToken := ""
	if len(cases) > limit {
		cases = cases[:limit]
		nextToken = pagination.EncodeDateBasedToken(cases[limit-1].CreatedAt)
	}

	return cases, nextToken, nil
}

// UpdateCase applies the update only when the stored version matches
// c.Version. A version miss on an existing case is a stale write.
func (r *PgxCaseRepository) UpdateCase(ctx context.Context, c domain.Case) error {
	query := `
		UPDATE cases
		SET name = $1, contact_person = $2, mobile = $3, alternate_mobile = $4,
			email = $5, folios = $6, status = $7, shareholders = $8,
			old_address = $9, new_address = $10, demat_created = $11,
			expenditure = $12, valuation_completed_at = $13,
			last_updated_at = $14, last_updated_by = $15,
			version = version + 1
		WHERE case_id = $16 AND version = $17;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		c.Name,
		c.ContactPerson,
		c.Mobile,
		c.AlternateMobile,
		c.Email,
		c.Folios,
		c.Status,
		c.Shareholders,
		c.OldAddress,
		c.NewAddress,
		c.DematCreated,
		c.Expenditure,
		c.ValuationCompletedAt,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
		c.CaseID,
		c.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update case query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.versionMissError(ctx, c.CaseID)
	}
	return nil
}

// versionMissError distinguishes a missing case from a stale version.
func (r *PgxCaseRepository) versionMissError(ctx context.Context, caseID string) error {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cases WHERE case_id = $1);`, caseID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check case existence: %w", err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: case %s was modified concurrently", apperrors.ErrConflict, caseID)
}

// AssignCase writes the assignment fields and bumps both staff members'
// active case counters in one transaction.
func (r *PgxCaseRepository) AssignCase(ctx context.Context, c domain.Case, rmID string, fieldBoyID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	caseQuery := `
		UPDATE cases
		SET assigned_rm = $1, assigned_field_boy = $2, assignment_timestamp = $3,
			last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE case_id = $6 AND version = $7;
	`
	cmdTag, err := tx.Exec(ctx, caseQuery,
		c.AssignedRM,
		c.AssignedFieldBoy,
		c.AssignmentTimestamp,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
		c.CaseID,
		c.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update case assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.versionMissError(ctx, c.CaseID)
	}

	counterQuery := `UPDATE users SET active_cases = active_cases + 1 WHERE user_id = $1 AND deleted_at IS NULL;`
	for _, userID := range []string{rmID, fieldBoyID} {
		cmdTag, err := tx.Exec(ctx, counterQuery, userID)
		if err != nil {
			return fmt.Errorf("failed to increment active cases for %s: %w", userID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
	}

	return r.Commit(ctx, tx)
}

// UnassignCase clears the assignment fields and decrements both counters,
// floored at zero, in one transaction.
func (r *PgxCaseRepository) UnassignCase(ctx context.Context, c domain.Case, rmID string, fieldBoyID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	caseQuery := `
		UPDATE cases
		SET assigned_rm = '', assigned_field_boy = '', assignment_timestamp = NULL,
			last_updated_at = $1, last_updated_by = $2, version = version + 1
		WHERE case_id = $3 AND version = $4;
	`
	cmdTag, err := tx.Exec(ctx, caseQuery,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
		c.CaseID,
		c.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to clear case assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.versionMissError(ctx, c.CaseID)
	}

	counterQuery := `UPDATE users SET active_cases = GREATEST(active_cases - 1, 0) WHERE user_id = $1;`
	for _, userID := range []string{rmID, fieldBoyID} {
		if _, err := tx.Exec(ctx, counterQuery, userID); err != nil {
			return fmt.Errorf("failed to decrement active cases for %s: %w", userID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCaseRepository) FindKYCByCase(ctx context.Context, caseID string) ([]domain.CompanyKYCStatus, error) {
	query := `
		SELECT case_id, company_name, kyc_completed, last_updated, updated_by
		FROM company_kyc
		WHERE case_id = $1
		ORDER BY company_name;
	`
	rows, err := r.Pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query KYC statuses: %w", err)
	}
	defer rows.Close()

	statuses := []domain.CompanyKYCStatus{}
	for rows.Next() {
		var st domain.CompanyKYCStatus
		if err := rows.Scan(&st.CaseID, &st.CompanyName, &st.KYCCompleted, &st.LastUpdated, &st.UpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan KYC row: %w", err)
		}
		statuses = append(statuses, st)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating KYC rows: %w", rows.Err())
	}

	return statuses, nil
}

func (r *PgxCaseRepository) UpsertKYC(ctx context.Context, status domain.CompanyKYCStatus) error {
	query := `
		INSERT INTO company_kyc (case_id, company_name, kyc_completed, last_updated, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (case_id, company_name) DO UPDATE SET
			kyc_completed = EXCLUDED.kyc_completed,
			last_updated = EXCLUDED.last_updated,
			updated_by = EXCLUDED.updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		status.CaseID,
		status.CompanyName,
		status.KYCCompleted,
		status.LastUpdated,
		status.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert KYC status: %w", err)
	}
	return nil
}

func (r *PgxCaseRepository) DeleteKYC(ctx context.Context, caseID string, companyName string) error {
	query := `DELETE FROM company_kyc WHERE case_id = $1 AND company_name = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, caseID, companyName)
	if err != nil {
		return fmt.Errorf("failed to delete KYC status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
