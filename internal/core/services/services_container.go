package services

import (
	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/collaborators"
	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/platform/config"
)

// Collaborators bundles the external process adapters the services depend on.
type Collaborators struct {
	Telephony     collaborators.TelephonyDispatcher
	DocumentStore collaborators.DocumentStore
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The user service doubles as the capability authorizer the other
	// services consult, so it is built first.
	container.User = NewUserService(repos.UserRepo)
	authorizer := container.User.(portssvc.CapabilityAuthorizerSvc)

	container.Case = NewCaseService(
		repos.CaseRepo,
		WithCaseAuthorizer(authorizer),
		WithUserReader(repos.UserRepo),
		WithValuationReader(repos.ValuationRepo),
	)

	container.Valuation = NewValuationService(
		repos.ValuationRepo,
		repos.CaseRepo,
		WithValuationAuthorizer(authorizer),
	)

	container.Reminder = NewReminderService(
		repos.ReminderRepo,
		WithReminderAuthorizer(authorizer),
	)

	container.Communication = NewCommunicationService(
		repos.CommunicationRepo,
		repos.CaseRepo,
		repos.ValuationRepo,
		collab.Telephony,
		WithCommunicationAuthorizer(authorizer),
	)

	container.Document = NewDocumentService(
		repos.DocumentRepo,
		repos.CaseRepo,
		collab.DocumentStore,
		WithDocumentAuthorizer(authorizer),
	)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)
	container.APIToken = NewAPITokenService(repos.APITokenRepo, container.User)

	return container
}
