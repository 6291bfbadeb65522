package services

import (
	portsrepo "github.com/SscSPs/benefits_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/benefits_service/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Benefit:  NewBenefitService(repos.BenefitRepo),
		Transfer: NewTransferService(repos.TxManager),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.BenefitSvcFacade = (*benefitService)(nil)
	_ portssvc.TransferSvc      = (*transferService)(nil)
)
