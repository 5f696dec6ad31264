package interview

import (
	"context"

	"github.com/Abraxas-365/hireboard/pkg/kernel"
)

// Gateway is the interview API. Listing is scoped to the signed-in user:
// the candidate's interviews for a job seeker, the company's for an employer.
type Gateway interface {
	// ListMine retrieves the signed-in user's interviews
	ListMine(ctx context.Context, filters Filters, page kernel.PaginationOptions) (*kernel.Paginated[Interview], error)

	// Get retrieves an interview by ID
	Get(ctx context.Context, id kernel.InterviewID) (*Interview, error)

	// Schedule creates an interview for an application (employer)
	Schedule(ctx context.Context, req ScheduleInterviewRequest) (*Interview, error)

	// Update reschedules or edits an interview (employer)
	Update(ctx context.Context, id kernel.InterviewID, req UpdateInterviewRequest) (*Interview, error)

	// Cancel calls off an interview
	Cancel(ctx context.Context, id kernel.InterviewID, req CancelInterviewRequest) (*Interview, error)
}
