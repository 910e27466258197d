package adminController

import (
	"context"
	"testing"

	"renhold/internal/apperrors"
	"renhold/internal/logger"
	. "renhold/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func admin() *User {
	return &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Roles:         []UserRole{{Role: RoleAdmin}},
	}
}

func TestGrantRole_RequiresAdmin(t *testing.T) {
	controller := &AdminController{log: logger.New("adminController")}

	employee := &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Roles:         []UserRole{{Role: RoleEmployee}},
	}

	err := controller.GrantRole(context.Background(), employee, &GrantRoleRequest{
		UserID: uuid.New(),
		Role:   string(RoleEmployee),
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGrantRole_RejectsUnknownRole(t *testing.T) {
	controller := &AdminController{log: logger.New("adminController")}

	err := controller.GrantRole(context.Background(), admin(), &GrantRoleRequest{
		UserID: uuid.New(),
		Role:   "superuser",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGrantRole_RequiresUserID(t *testing.T) {
	controller := &AdminController{log: logger.New("adminController")}

	err := controller.GrantRole(context.Background(), admin(), &GrantRoleRequest{
		Role: string(RoleEmployee),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
