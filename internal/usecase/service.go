package usecase

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/audio-service/config"
	natsadapter "github.com/example/audio-service/internal/adapters/nats"
	repo "github.com/example/audio-service/internal/adapters/postgres"
	"github.com/example/audio-service/internal/adapters/storage"
	"github.com/example/audio-service/internal/adapters/yandex"
	"github.com/example/audio-service/internal/domain"
	pkglog "github.com/example/audio-service/pkg/log"
)

var allowedExtensions = map[string]struct{}{
	".mp3": {},
	".wav": {},
	".ogg": {},
}

type UploadInput struct {
	// Name is the caller-supplied override; empty means use OriginalFilename.
	Name             string
	OriginalFilename string
	Content          io.Reader
}

type Service interface {
	AuthorizationURL(state string) string
	LoginWithYandex(ctx context.Context, traceID, code string) (*domain.User, *Tokens, error)
	RefreshToken(ctx context.Context, traceID string, user *domain.User) (*Tokens, error)
	GetUser(ctx context.Context, traceID string, actor *domain.User, id string) (*domain.User, error)
	UpdateUsername(ctx context.Context, traceID string, user *domain.User, username string) (*domain.User, error)
	DeleteUser(ctx context.Context, traceID string, actor *domain.User, id string) error
	UploadAudio(ctx context.Context, traceID string, owner *domain.User, in UploadInput) (*domain.AudioFile, error)
	ListAudioFiles(ctx context.Context, traceID, ownerID string) ([]domain.AudioFile, error)
}

type audioService struct {
	cfg    *config.Config
	logger pkglog.Logger
	users  repo.UserRepository
	files  repo.AudioFileRepository
	store  storage.Store
	oauth  yandex.Client
	events natsadapter.EventPublisher
	signer JWTSigner
}

func NewService(cfg *config.Config, logger pkglog.Logger, users repo.UserRepository, files repo.AudioFileRepository, store storage.Store, oauth yandex.Client, events natsadapter.EventPublisher, signer JWTSigner) Service {
	return &audioService{cfg: cfg, logger: logger, users: users, files: files, store: store, oauth: oauth, events: events, signer: signer}
}

func (s *audioService) AuthorizationURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

func (s *audioService) LoginWithYandex(ctx context.Context, traceID, code string) (*domain.User, *Tokens, error) {
	accessToken, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.oauth.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByYandexID(ctx, profile.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		email := normalizeEmail(profile.Email)
		user = &domain.User{
			YandexID:    profile.ID,
			Email:       email,
			Username:    profile.DisplayName,
			IsActive:    true,
			IsSuperuser: s.cfg.SuperuserEmail != "" && email == normalizeEmail(s.cfg.SuperuserEmail),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, nil, err
		}
		if s.events != nil {
			_ = s.events.UserCreated(ctx, user.ID, user.Email)
		}
		s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("user created from yandex profile")
	case err != nil:
		return nil, nil, err
	default:
		now := time.Now()
		user.LastLoginAt = &now
		_ = s.users.Update(ctx, user)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("yandex login")
	return user, tokens, nil
}

func (s *audioService) RefreshToken(ctx context.Context, traceID string, user *domain.User) (*Tokens, error) {
	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("token refreshed")
	return tokens, nil
}

// GetUser requires a superuser actor. The privilege check runs before the
// lookup so a non-superuser never learns whether the id exists.
func (s *audioService) GetUser(ctx context.Context, traceID string, actor *domain.User, id string) (*domain.User, error) {
	if !actor.IsSuperuser {
		return nil, ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *audioService) UpdateUsername(ctx context.Context, traceID string, user *domain.User, username string) (*domain.User, error) {
	user.Username = username
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("username updated")
	return user, nil
}

func (s *audioService) DeleteUser(ctx context.Context, traceID string, actor *domain.User, id string) error {
	if !actor.IsSuperuser {
		return ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	files, err := s.files.ListByOwner(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	// Rows are gone via the FK cascade; stored bytes go best-effort.
	for _, f := range files {
		if err := s.store.Remove(f.FilePath); err != nil {
			s.logger.Warn().Str("trace_id", traceID).Str("path", f.FilePath).Err(err).Msg("orphaned audio file left on disk")
		}
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", user.ID).Msg("user deleted")
	return nil
}

func (s *audioService) UploadAudio(ctx context.Context, traceID string, owner *domain.User, in UploadInput) (*domain.AudioFile, error) {
	ext := strings.ToLower(filepath.Ext(in.OriginalFilename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, ErrUnsupportedFileType
	}
	filename := strings.TrimSpace(in.Name)
	if filename == "" {
		filename = in.OriginalFilename
	}

	// Storage key is a fresh uuid, so concurrent uploads with the same
	// caller-facing name never clobber each other.
	path, err := s.store.Save(uuid.NewString()+ext, in.Content)
	if err != nil {
		return nil, ErrStorageWrite
	}

	file := &domain.AudioFile{Filename: filename, FilePath: path, OwnerID: owner.ID}
	if err := s.files.Create(ctx, file); err != nil {
		_ = s.store.Remove(path)
		return nil, err
	}
	if s.events != nil {
		_ = s.events.AudioUploaded(ctx, file.ID, owner.ID, file.Filename)
	}
	s.logger.Info().Str("trace_id", traceID).Str("user_id", owner.ID).Str("file_id", file.ID).Msg("audio uploaded")
	return file, nil
}

func (s *audioService) ListAudioFiles(ctx context.Context, traceID, ownerID string) ([]domain.AudioFile, error) {
	return s.files.ListByOwner(ctx, ownerID)
}

func (s *audioService) issueTokens(user *domain.User) (*Tokens, error) {
	claims := map[string]interface{}{"email": user.Email}
	access, err := s.signer.SignAccessToken(user.ID, claims, s.cfg.AccessTTL())
	if err != nil {
		return nil, err
	}
	return &Tokens{AccessToken: access, TokenType: "bearer", ExpiresIn: int64(s.cfg.AccessTTL().Seconds())}, nil
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }
