package program

import (
	"context"
	"fmt"
	"time"

	programRepo "flexspace/database/repository/program"
	userRepo "flexspace/database/repository/user"
	"flexspace/models"
	"flexspace/services/notification"
	"flexspace/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgramService manages programs and enrollment. Programs use a plain
// enrolled-count ceiling; there is no buffer or overlap policy here.
type ProgramService interface {
	CreateProgram(ctx context.Context, input models.ProgramInput) (*models.Program, error)
	GetProgram(ctx context.Context, id string) (*models.Program, error)
	ListPrograms(ctx context.Context) ([]models.Program, error)
	UpdateProgram(ctx context.Context, id string, input models.ProgramInput) (*models.Program, error)
	DeleteProgram(ctx context.Context, id string) error

	// Apply enrolls a user (status applied), rejecting duplicates and closed
	// programs.
	Apply(ctx context.Context, programID, userID string) (*models.ProgramApplication, error)

	// Decide accepts or rejects an application. Acceptance re-checks the
	// enrolled-count ceiling inside a transaction.
	Decide(ctx context.Context, applicationID string, accept bool) error

	ListApplications(ctx context.Context, programID, userID string) ([]models.ProgramApplication, error)
}

// DefaultProgramService is the production implementation.
type DefaultProgramService struct {
	Repo     programRepo.ProgramRepository
	UserRepo userRepo.UserRepository
	Notify   notification.Enqueuer
}

// CreateProgram validates and persists a new program.
func (s *DefaultProgramService) CreateProgram(ctx context.Context, input models.ProgramInput) (*models.Program, error) {
	if input.Capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1")
	}

	p := &models.Program{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		FacilityID:  input.FacilityID,
		Capacity:    input.Capacity,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Schedule:    input.Schedule,
		Status:      models.ProgramStatusOpen,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProgram retrieves one program.
func (s *DefaultProgramService) GetProgram(ctx context.Context, id string) (*models.Program, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("program with id %s not found", id)
	}
	return p, nil
}

// ListPrograms returns all programs.
func (s *DefaultProgramService) ListPrograms(ctx context.Context) ([]models.Program, error) {
	return s.Repo.GetAll(ctx)
}

// UpdateProgram applies an edit to an existing program.
func (s *DefaultProgramService) UpdateProgram(ctx context.Context, id string, input models.ProgramInput) (*models.Program, error) {
	if input.Capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1")
	}

	p, err := s.GetProgram(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Title = input.Title
	p.Description = input.Description
	p.FacilityID = input.FacilityID
	p.Capacity = input.Capacity
	p.StartDate = input.StartDate
	p.EndDate = input.EndDate
	p.Schedule = input.Schedule

	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProgram removes a program.
func (s *DefaultProgramService) DeleteProgram(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Apply enrolls a user into a program with status applied.
func (s *DefaultProgramService) Apply(ctx context.Context, programID, userID string) (*models.ProgramApplication, error) {
	usr, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, fmt.Errorf("user profile not found")
	}

	app := &models.ProgramApplication{
		ID:        uuid.New().String(),
		ProgramID: programID,
		UserID:    usr.ID,
		UserName:  usr.Name,
		UserEmail: usr.Email,
		Status:    models.ApplicationStatusApplied,
	}

	err = s.Repo.WithTransaction(ctx, func(sc context.Context) error {
		p, err := s.Repo.GetByID(sc, programID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("program not found")
		}
		if p.Status != models.ProgramStatusOpen {
			return fmt.Errorf("program is closed for enrollment")
		}

		existing, err := s.Repo.FindApplication(sc, programID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("you have already applied to this program")
		}

		app.CreatedAt = time.Now()
		return s.Repo.InsertApplication(sc, app)
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Decide accepts or rejects an application. Acceptance atomically re-checks
// the enrolled-count ceiling and bumps the count.
func (s *DefaultProgramService) Decide(ctx context.Context, applicationID string, accept bool) error {
	var decided *models.ProgramApplication
	var programTitle string

	err := s.Repo.WithTransaction(ctx, func(sc context.Context) error {
		app, err := s.Repo.GetApplicationByID(sc, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return fmt.Errorf("application not found")
		}
		if app.Status != models.ApplicationStatusApplied {
			return fmt.Errorf("application already decided: %s", app.Status)
		}

		p, err := s.Repo.GetByID(sc, app.ProgramID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("program not found")
		}
		programTitle = p.Title

		if !accept {
			app.Status = models.ApplicationStatusRejected
			decided = app
			return s.Repo.UpdateApplicationStatus(sc, applicationID, models.ApplicationStatusRejected)
		}

		if p.EnrolledCount >= p.Capacity {
			return fmt.Errorf("program is full: %d/%d enrolled", p.EnrolledCount, p.Capacity)
		}
		if err := s.Repo.UpdateApplicationStatus(sc, applicationID, models.ApplicationStatusAccepted); err != nil {
			return err
		}
		app.Status = models.ApplicationStatusAccepted
		decided = app
		return s.Repo.IncEnrolled(sc, p.ID, 1)
	})
	if err != nil {
		return err
	}

	if s.Notify != nil && decided != nil {
		nctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		payload := models.NotifyPayload{
			Event:        models.NotifyProgramDecision,
			ProgramID:    decided.ProgramID,
			ProgramTitle: programTitle,
			UserID:       decided.UserID,
			UserName:     decided.UserName,
			UserEmail:    decided.UserEmail,
			Status:       decided.Status,
		}
		if err := s.Notify.EnqueueNotify(nctx, payload); err != nil {
			utils.GetLogger().Warn("failed to enqueue program notification",
				zap.String("applicationID", applicationID), zap.Error(err))
		}
	}
	return nil
}

// ListApplications returns applications filtered by program and/or user.
func (s *DefaultProgramService) ListApplications(ctx context.Context, programID, userID string) ([]models.ProgramApplication, error) {
	return s.Repo.ListApplications(ctx, programID, userID)
}
