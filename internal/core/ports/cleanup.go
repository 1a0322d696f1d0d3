package ports

import (
	"context"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

// CleanupQueue accepts cascade jobs for asynchronous processing.
type CleanupQueue interface {
	Enqueue(job domain.CleanupJob)
}

// CleanupService runs one cascade job.
type CleanupService interface {
	Process(ctx context.Context, job domain.CleanupJob) error
}
