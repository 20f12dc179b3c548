package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"getscience-be/internal/dto"
	"getscience-be/internal/pkg/serverutils"
	"getscience-be/internal/repository/specification"
	"getscience-be/internal/repository/unitofwork"
	"getscience-be/pkg/storage"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, fileName, contentType string, size int64, r io.Reader) (*dto.UploadAvatarResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	storage    storage.Provider
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, storageProvider storage.Provider) IUserService {
	return &userService{
		uowFactory: uowFactory,
		storage:    storageProvider,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFoundError("User not found")
	}
	return userToProfile(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFoundError("User not found")
	}

	user.FullName = req.FullName
	if req.Affiliation != "" {
		affiliation := req.Affiliation
		user.Affiliation = &affiliation
	}
	if req.AboutMe != "" {
		aboutMe := req.AboutMe
		user.AboutMe = &aboutMe
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return userToProfile(user), nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID uuid.UUID, fileName, contentType string, size int64, r io.Reader) (*dto.UploadAvatarResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFoundError("User not found")
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), path.Ext(fileName))
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      r,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		return nil, err
	}

	user.AvatarURL = &uploaded.URL
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.UploadAvatarResponse{AvatarURL: uploaded.URL}, nil
}
