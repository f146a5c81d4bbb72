package query

import (
	"context"

	"github.com/eaglebank/signup-service/shared/cqrs"
	"github.com/eaglebank/signup-service/shared/models"
)

type UserViewReader interface {
	GetByID(ctx context.Context, id string) (*models.ProvisionedUserView, error)
}

// UserQueryService reads provisioned-user views from the Redis cache (with a Postgres fallback).
type UserQueryService struct {
	readRepo UserViewReader
}

func NewUserQueryService(readRepo UserViewReader) *UserQueryService {
	return &UserQueryService{readRepo: readRepo}
}

func (s *UserQueryService) GetProvisionedUser(ctx context.Context, q cqrs.GetProvisionedUserQuery) (*models.ProvisionedUserView, error) {
	return s.readRepo.GetByID(ctx, q.UserID)
}
