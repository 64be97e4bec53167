package implementation

import (
	"context"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/model"
	"event-reg-be/internal/repository/contract"
	"event-reg-be/internal/repository/specification"

	"gorm.io/gorm"
)

type userRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := &model.User{
		Id:            user.Id,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		FullName:      user.FullName,
		Role:          string(user.Role),
		Region:        user.Region,
		Status:        string(user.Status),
		EmailVerified: user.EmailVerified,
		AvatarURL:     user.AvatarURL,
	}
	return r.db.WithContext(ctx).Create(modelUser).Error
}

func (r *userRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelUser).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelUser), nil
}

func (r *userRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var modelUsers []*model.User
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelUsers).Error; err != nil {
		return nil, err
	}

	var users []*entity.User
	for _, mu := range modelUsers {
		users = append(users, r.mapToEntity(mu))
	}
	return users, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.Id).
		Updates(map[string]interface{}{
			"full_name":      user.FullName,
			"role":           string(user.Role),
			"region":         user.Region,
			"status":         string(user.Status),
			"email_verified": user.EmailVerified,
			"avatar_url":     user.AvatarURL,
		}).Error
}

func (r *userRepositoryImpl) CreateProvider(ctx context.Context, provider *entity.UserProvider) error {
	modelProvider := &model.UserProvider{
		Id:             provider.Id,
		UserId:         provider.UserId,
		ProviderName:   provider.ProviderName,
		ProviderUserId: provider.ProviderUserId,
		AvatarURL:      provider.AvatarURL,
	}
	return r.db.WithContext(ctx).Create(modelProvider).Error
}

func (r *userRepositoryImpl) FindProvider(ctx context.Context, providerName, providerUserId string) (*entity.UserProvider, error) {
	var mp model.UserProvider
	err := r.db.WithContext(ctx).
		Where("provider_name = ? AND provider_user_id = ?", providerName, providerUserId).
		First(&mp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entity.UserProvider{
		Id:             mp.Id,
		UserId:         mp.UserId,
		ProviderName:   mp.ProviderName,
		ProviderUserId: mp.ProviderUserId,
		AvatarURL:      mp.AvatarURL,
		CreatedAt:      mp.CreatedAt,
	}, nil
}

func (r *userRepositoryImpl) mapToEntity(mu *model.User) *entity.User {
	return &entity.User{
		Id:            mu.Id,
		Email:         mu.Email,
		PasswordHash:  mu.PasswordHash,
		FullName:      mu.FullName,
		Role:          lifecycle.Role(mu.Role),
		Region:        mu.Region,
		Status:        entity.UserStatus(mu.Status),
		EmailVerified: mu.EmailVerified,
		AvatarURL:     mu.AvatarURL,
		CreatedAt:     mu.CreatedAt,
		UpdatedAt:     mu.UpdatedAt,
	}
}
