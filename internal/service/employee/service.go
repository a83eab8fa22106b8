package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/repository"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/logger"
	"github.com/clinicdesk/clinic-api/pkg/validator"
)

type Service struct {
	repo     repository.EmployeeRepository
	validate *validator.Validator
	logger   *logger.Logger
}

func NewService(repo repository.EmployeeRepository, logger *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *Service) Get(ctx context.Context, id int) (*model.EmployeeView, error) {
	employee, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toView(employee), nil
}

// List returns all active employees regardless of position.
func (s *Service) List(ctx context.Context) ([]*model.EmployeeView, error) {
	employees, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return toViews(employees), nil
}

// Doctors returns the active employees holding the doctor position.
func (s *Service) Doctors(ctx context.Context) ([]*model.EmployeeView, error) {
	employees, err := s.repo.ListActiveByPosition(ctx, model.PositionDoctor)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return toViews(employees), nil
}

// Update applies a partial update with non-empty field semantics.
func (s *Service) Update(ctx context.Context, id int, req *model.UpdateEmployeeRequest) (*model.EmployeeView, error) {
	if req.ID != id {
		return nil, apperrors.Validation("id mismatch between route and body", nil)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err.Error(), err)
	}

	employee, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		employee.FirstName = req.FirstName
	}
	if req.LastName != "" {
		employee.LastName = req.LastName
	}
	if req.Gender != nil {
		employee.Gender = *req.Gender
	}
	if req.Email != "" {
		employee.Email = req.Email
	}
	if req.Phone != "" {
		employee.Phone = req.Phone
	}
	if req.Address != "" {
		employee.Address = req.Address
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.HireDate != nil {
		employee.HireDate = *req.HireDate
	}

	now := time.Now()
	employee.UpdatedOn = &now

	if err := s.repo.Update(ctx, employee); err != nil {
		return nil, err
	}
	s.logger.Info("employee updated", "employee_id", employee.ID)

	return toView(employee), nil
}

func toView(e *model.Employee) *model.EmployeeView {
	return &model.EmployeeView{
		ID:         e.ID,
		Name:       e.FullName(),
		Gender:     e.Gender,
		Email:      e.Email,
		Phone:      e.Phone,
		Address:    e.Address,
		Position:   e.Position,
		Department: e.Department,
		HireDate:   e.HireDate,
		IsActive:   e.IsActive,
	}
}

func toViews(employees []*model.Employee) []*model.EmployeeView {
	views := make([]*model.EmployeeView, 0, len(employees))
	for _, e := range employees {
		views = append(views, toView(e))
	}
	return views
}
