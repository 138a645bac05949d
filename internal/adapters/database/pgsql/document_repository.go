package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
)

// PgxDocumentRepository stores document metadata. The file bytes live with the
// storage collaborator.
type PgxDocumentRepository struct {
	db *pgxpool.Pool
}

func newPgxDocumentRepository(db *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{db: db}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func (r *PgxDocumentRepository) FindDocumentsByCase(ctx context.Context, caseID string) ([]domain.DocumentRecord, error) {
	query := `
		SELECT document_id, case_id, shareholder, category, file_name, size, stored_uri, upload_date, uploaded_by
		FROM documents
		WHERE case_id = $1
		ORDER BY upload_date DESC;
	`
	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.DocumentRecord{}
	for rows.Next() {
		var d domain.DocumentRecord
		err := rows.Scan(
			&d.DocumentID,
			&d.CaseID,
			&d.Shareholder,
			&d.Category,
			&d.FileName,
			&d.Size,
			&d.StoredURI,
			&d.UploadDate,
			&d.UploadedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", rows.Err())
	}

	return docs, nil
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.DocumentRecord) error {
	query := `
		INSERT INTO documents (
			document_id, case_id, shareholder, category, file_name, size, stored_uri, upload_date, uploaded_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		doc.DocumentID,
		doc.CaseID,
		doc.Shareholder,
		doc.Category,
		doc.FileName,
		doc.Size,
		doc.StoredURI,
		doc.UploadDate,
		doc.UploadedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save document record: %w", err)
	}
	return nil
}
