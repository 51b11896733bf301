package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/audio-service/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByYandexID(ctx context.Context, yandexID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

type AudioFileRepository interface {
	Create(ctx context.Context, file *domain.AudioFile) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.AudioFile, error)
}

type userRepo struct{ db *gorm.DB }

type audioFileRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func NewAudioFileRepository(db *gorm.DB) AudioFileRepository { return &audioFileRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByYandexID(ctx context.Context, yandexID string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("yandex_id = ?", yandexID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{}).Error
}

func (r *audioFileRepo) Create(ctx context.Context, file *domain.AudioFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *audioFileRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.AudioFile, error) {
	var files []domain.AudioFile
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}
