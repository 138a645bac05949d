package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository onto one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:          newPgxUserRepository(dbPool),
		CaseRepo:          newPgxCaseRepository(dbPool),
		ValuationRepo:     newPgxValuationRepository(dbPool),
		ReminderRepo:      newPgxReminderRepository(dbPool),
		CommunicationRepo: newPgxCommunicationRepository(dbPool),
		DocumentRepo:      newPgxDocumentRepository(dbPool),
		APITokenRepo:      newPgxAPITokenRepository(dbPool),
	}
}
