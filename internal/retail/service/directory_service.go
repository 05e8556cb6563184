package service

import (
	"context"
	"time"

	"github.com/finwatch/finwatch/internal/retail/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StoreService manages retail outlets.
type StoreService interface {
	Create(ctx context.Context, dto StoreCreateDto) (*StoreDto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*StoreDto, error)
	FindAll(ctx context.Context) ([]StoreDto, error)
	Update(ctx context.Context, id uuid.UUID, dto StoreCreateDto) (*StoreDto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeeService manages employees. Employees always belong to an existing store.
type EmployeeService interface {
	Create(ctx context.Context, dto EmployeeCreateDto) (*EmployeeDto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*EmployeeDto, error)
	FindAll(ctx context.Context) ([]EmployeeDto, error)
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]EmployeeDto, error)
	Update(ctx context.Context, id uuid.UUID, dto EmployeeCreateDto) (*EmployeeDto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type StoreDto struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Manager    string     `json:"manager"`
	Region     string     `json:"region"`
	Territory  string     `json:"territory"`
	District   string     `json:"district"`
	Settlement string     `json:"settlement"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type StoreCreateDto struct {
	Name       string `json:"name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	Manager    string `json:"manager" validate:"required"`
	Region     string `json:"region"`
	Territory  string `json:"territory"`
	District   string `json:"district"`
	Settlement string `json:"settlement"`
}

type EmployeeDto struct {
	ID                  uuid.UUID       `json:"id"`
	FirstName           string          `json:"firstName"`
	LastName            string          `json:"lastName"`
	Position            string          `json:"position"`
	MonthlySalary       decimal.Decimal `json:"monthlySalary"`
	EmploymentStartDate time.Time       `json:"employmentStartDate"`
	StoreID             uuid.UUID       `json:"storeId"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           *time.Time      `json:"updatedAt,omitempty"`
}

type EmployeeCreateDto struct {
	FirstName           string          `json:"firstName" validate:"required"`
	LastName            string          `json:"lastName" validate:"required"`
	Position            string          `json:"position" validate:"required"`
	MonthlySalary       decimal.Decimal `json:"monthlySalary" validate:"required"`
	EmploymentStartDate time.Time       `json:"employmentStartDate" validate:"required"`
	StoreID             uuid.UUID       `json:"storeId" validate:"required"`
}

type Stores struct {
	directory store.Directory
}

func NewStoreService(directory store.Directory) *Stores {
	return &Stores{directory: directory}
}

func (s *Stores) Create(ctx context.Context, dto StoreCreateDto) (*StoreDto, error) {
	created, err := s.directory.CreateStore(ctx, &store.Store{
		Name:       dto.Name,
		Address:    dto.Address,
		Manager:    dto.Manager,
		Region:     dto.Region,
		Territory:  dto.Territory,
		District:   dto.District,
		Settlement: dto.Settlement,
	})
	if err != nil {
		return nil, err
	}
	return toStoreDto(created), nil
}

func (s *Stores) FindByID(ctx context.Context, id uuid.UUID) (*StoreDto, error) {
	found, err := s.directory.FindStoreByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStoreDto(found), nil
}

func (s *Stores) FindAll(ctx context.Context) ([]StoreDto, error) {
	stores, err := s.directory.FindAllStores(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]StoreDto, 0, len(stores))
	for i := range stores {
		dtos = append(dtos, *toStoreDto(&stores[i]))
	}
	return dtos, nil
}

func (s *Stores) Update(ctx context.Context, id uuid.UUID, dto StoreCreateDto) (*StoreDto, error) {
	updated, err := s.directory.UpdateStore(ctx, &store.Store{
		ID:         id,
		Name:       dto.Name,
		Address:    dto.Address,
		Manager:    dto.Manager,
		Region:     dto.Region,
		Territory:  dto.Territory,
		District:   dto.District,
		Settlement: dto.Settlement,
	})
	if err != nil {
		return nil, err
	}
	return toStoreDto(updated), nil
}

func (s *Stores) Delete(ctx context.Context, id uuid.UUID) error {
	return s.directory.DeleteStore(ctx, id)
}

func toStoreDto(s *store.Store) *StoreDto {
	return &StoreDto{
		ID:         s.ID,
		Name:       s.Name,
		Address:    s.Address,
		Manager:    s.Manager,
		Region:     s.Region,
		Territory:  s.Territory,
		District:   s.District,
		Settlement: s.Settlement,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

type Employees struct {
	directory store.Directory
}

func NewEmployeeService(directory store.Directory) *Employees {
	return &Employees{directory: directory}
}

func (s *Employees) Create(ctx context.Context, dto EmployeeCreateDto) (*EmployeeDto, error) {
	// Reject unknown stores up front for a precise error instead of a raw FK violation.
	if _, err := s.directory.FindStoreByID(ctx, dto.StoreID); err != nil {
		return nil, err
	}
	created, err := s.directory.CreateEmployee(ctx, &store.Employee{
		FirstName:           dto.FirstName,
		LastName:            dto.LastName,
		Position:            dto.Position,
		MonthlySalary:       dto.MonthlySalary,
		EmploymentStartDate: dto.EmploymentStartDate,
		StoreID:             dto.StoreID,
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeDto(created), nil
}

func (s *Employees) FindByID(ctx context.Context, id uuid.UUID) (*EmployeeDto, error) {
	found, err := s.directory.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeDto(found), nil
}

func (s *Employees) FindAll(ctx context.Context) ([]EmployeeDto, error) {
	employees, err := s.directory.FindAllEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return toEmployeeDtos(employees), nil
}

func (s *Employees) FindByStore(ctx context.Context, storeID uuid.UUID) ([]EmployeeDto, error) {
	employees, err := s.directory.FindEmployeesByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return toEmployeeDtos(employees), nil
}

func (s *Employees) Update(ctx context.Context, id uuid.UUID, dto EmployeeCreateDto) (*EmployeeDto, error) {
	if _, err := s.directory.FindStoreByID(ctx, dto.StoreID); err != nil {
		return nil, err
	}
	updated, err := s.directory.UpdateEmployee(ctx, &store.Employee{
		ID:                  id,
		FirstName:           dto.FirstName,
		LastName:            dto.LastName,
		Position:            dto.Position,
		MonthlySalary:       dto.MonthlySalary,
		EmploymentStartDate: dto.EmploymentStartDate,
		StoreID:             dto.StoreID,
	})
	if err != nil {
		return nil, err
	}
	return toEmployeeDto(updated), nil
}

func (s *Employees) Delete(ctx context.Context, id uuid.UUID) error {
	return s.directory.DeleteEmployee(ctx, id)
}

func toEmployeeDto(e *store.Employee) *EmployeeDto {
	return &EmployeeDto{
		ID:                  e.ID,
		FirstName:           e.FirstName,
		LastName:            e.LastName,
		Position:            e.Position,
		MonthlySalary:       e.MonthlySalary,
		EmploymentStartDate: e.EmploymentStartDate,
		StoreID:             e.StoreID,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func toEmployeeDtos(employees []store.Employee) []EmployeeDto {
	dtos := make([]EmployeeDto, 0, len(employees))
	for i := range employees {
		dtos = append(dtos, *toEmployeeDto(&employees[i]))
	}
	return dtos
}
