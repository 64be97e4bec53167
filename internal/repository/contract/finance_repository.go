package contract

import (
	"context"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/repository/specification"
)

type ExpenseRequestRepository interface {
	Create(ctx context.Context, request *entity.ExpenseRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExpenseRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExpenseRequest, error)
	FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.ExpenseRequest, error)
	Update(ctx context.Context, request *entity.ExpenseRequest) error
}

type DonationRepository interface {
	Create(ctx context.Context, donation *entity.Donation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Donation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Donation, error)
	Update(ctx context.Context, donation *entity.Donation) error
}

type IncomeSourceRepository interface {
	Create(ctx context.Context, source *entity.IncomeSource) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IncomeSource, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IncomeSource, error)
	Update(ctx context.Context, source *entity.IncomeSource) error
}
