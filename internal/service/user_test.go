package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

func TestUserCreateChild(t *testing.T) {
	parentID := int64(1)
	repo := &fakeUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Role: domain.UserRolePatient, IsActive: true},
		2: {ID: 2, Role: domain.UserRolePatient, ParentID: &parentID},
	}}
	svc := NewUserService(repo, zap.NewNop())

	id, err := svc.CreateChild(context.Background(), 1, domain.CreateChildDTO{
		FirstName: "Lena",
		LastName:  "Cruz",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	require.NotNil(t, created.ParentID)
	assert.Equal(t, int64(1), *created.ParentID)
	assert.Equal(t, domain.UserRolePatient, created.Role)
	// У детского профиля нет своих учетных данных.
	assert.Empty(t, created.Email)
	assert.Empty(t, created.Phone)
	assert.Empty(t, created.Password)
}

func TestUserCreateChild_ChildCannotHaveChildren(t *testing.T) {
	parentID := int64(1)
	repo := &fakeUserRepo{users: map[int64]*domain.User{
		2: {ID: 2, Role: domain.UserRolePatient, ParentID: &parentID},
	}}
	svc := NewUserService(repo, zap.NewNop())

	_, err := svc.CreateChild(context.Background(), 2, domain.CreateChildDTO{
		FirstName: "Lena",
		LastName:  "Cruz",
	})

	assert.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestUserUpdateChild_OwnershipEnforced(t *testing.T) {
	ownerID := int64(1)
	repo := &fakeUserRepo{users: map[int64]*domain.User{
		2: {ID: 2, Role: domain.UserRolePatient, ParentID: &ownerID},
	}}
	svc := NewUserService(repo, zap.NewNop())

	err := svc.UpdateChild(context.Background(), 3, 2, domain.UpdateChildDTO{
		FirstName: PointerTo("Lena"),
	})
	assert.Error(t, err)

	err = svc.UpdateChild(context.Background(), 1, 2, domain.UpdateChildDTO{
		FirstName: PointerTo("Lena"),
	})
	assert.NoError(t, err)
}
