package services_test

import (
	"testing"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
	"foodcourt/internal/services"

	"github.com/stretchr/testify/assert"
)

func newUserServiceForTest(t *testing.T) (*services.UserService, *repositories.MockUserRepository) {
	t.Helper()
	userRepo := repositories.NewMockUserRepository()
	for _, u := range []models.User{
		{ID: "user-1", FirstName: "Ada", Email: "ada@example.com", Role: models.RoleUser},
		{ID: "user-2", FirstName: "Chef", Email: "chef@example.com", Role: models.RoleAdmin, AdminID: "FOOD/2026/1234"},
	} {
		user := u
		if err := userRepo.Create(&user); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	return services.NewUserService(userRepo), userRepo
}

func TestUserService_ListUsers(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	users, err := svc.ListUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_UpdateUser(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	updated, err := svc.UpdateUser("user-1", services.UserUpdate{
		FirstName: "Augusta",
		LastName:  "Lovelace",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	// Untouched fields survive a partial update.
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.Equal(t, models.RoleUser, updated.Role)

	_, err = svc.UpdateUser("missing", services.UserUpdate{FirstName: "Ghost"})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUserService_UpdateUserEmail(t *testing.T) {
	svc, userRepo := newUserServiceForTest(t)

	// Moving to an address another account holds is rejected.
	_, err := svc.UpdateUser("user-1", services.UserUpdate{Email: "chef@example.com"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	updated, err := svc.UpdateUser("user-1", services.UserUpdate{Email: "augusta@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, "augusta@example.com", updated.Email)

	stored, err := userRepo.GetByEmail("augusta@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", stored.ID)
}

func TestUserService_UpdateUserRole(t *testing.T) {
	svc, _ := newUserServiceForTest(t)

	// Promotion to admin issues an admin ID.
	updated, err := svc.UpdateUser("user-1", services.UserUpdate{Role: models.RoleAdmin})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Regexp(t, `^FOOD/\d{4}/\d{4}$`, updated.AdminID)

	// An existing admin ID is kept on a no-op promotion.
	updated, err = svc.UpdateUser("user-2", services.UserUpdate{Role: models.RoleAdmin})
	assert.NoError(t, err)
	assert.Equal(t, "FOOD/2026/1234", updated.AdminID)

	_, err = svc.UpdateUser("user-1", services.UserUpdate{Role: "superuser"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestUserService_DeleteUser(t *testing.T) {
	svc, userRepo := newUserServiceForTest(t)

	assert.NoError(t, svc.DeleteUser("user-1"))
	_, err := userRepo.GetByID("user-1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteUser("user-1"), services.ErrNotFound)
}
