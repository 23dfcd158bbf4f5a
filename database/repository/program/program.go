package programRepo

import (
	"context"

	"flexspace/models"
)

// ProgramRepository defines data access for the programs and
// program_applications collections.
type ProgramRepository interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, id string) (*models.Program, error)
	GetAll(ctx context.Context) ([]models.Program, error)
	Update(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id string) error

	// IncEnrolled atomically adjusts a program's enrolled count by delta.
	IncEnrolled(ctx context.Context, id string, delta int) error

	InsertApplication(ctx context.Context, app *models.ProgramApplication) error
	GetApplicationByID(ctx context.Context, id string) (*models.ProgramApplication, error)
	FindApplication(ctx context.Context, programID, userID string) (*models.ProgramApplication, error)
	ListApplications(ctx context.Context, programID, userID string) ([]models.ProgramApplication, error)
	UpdateApplicationStatus(ctx context.Context, id, status string) error

	// WithTransaction runs fn inside a session transaction spanning both
	// program collections.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
