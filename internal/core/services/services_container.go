package services

import (
	portsrepo "github.com/finvault/fin_statements_app/internal/core/ports/repositories"
	portssvc "github.com/finvault/fin_statements_app/internal/core/ports/services"
	"github.com/finvault/fin_statements_app/internal/events"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The publisher may be nil when event publishing is not configured.
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)

	statementOpts := []StatementServiceOption{}
	if publisher != nil {
		statementOpts = append(statementOpts, WithEventPublisher(publisher))
	}
	container.Statement = NewStatementService(repos.UserRepo, repos.StatementRepo, statementOpts...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade      = (*userService)(nil)
	_ portssvc.StatementSvcFacade = (*statementService)(nil)
)
