package application

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// Gateway is the job seeker's application API
type Gateway interface {
	// Submit applies to a job
	Submit(ctx context.Context, req SubmitApplicationRequest) (*Application, error)

	// ListMine retrieves the signed-in job seeker's applications
	ListMine(ctx context.Context, filters Filters, page kernel.PaginationOptions) (*kernel.Paginated[Application], error)

	// Get retrieves an application by ID
	Get(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// Withdraw withdraws an application
	Withdraw(ctx context.Context, id kernel.ApplicationID) error
}
