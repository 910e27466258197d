package adminController

import (
	"context"
	"fmt"

	"renhold/internal/apperrors"
	"renhold/internal/logger"
	. "renhold/internal/models"
	"renhold/internal/repositories"

	"github.com/google/uuid"
)

type GrantRoleRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	Role   string    `json:"role"   validate:"required"`
}

type AdminControllerInterface interface {
	GrantRole(ctx context.Context, actor *User, request *GrantRoleRequest) error
}

type AdminController struct {
	userRepo repositories.UserRepository
	log      logger.Logger
}

func New(userRepo repositories.UserRepository) AdminControllerInterface {
	return &AdminController{
		userRepo: userRepo,
		log:      logger.New("adminController"),
	}
}

// GrantRole adds a role to a user. Admin only; the unique index makes a
// repeated grant a duplicate-entry error.
func (c *AdminController) GrantRole(
	ctx context.Context,
	actor *User,
	request *GrantRoleRequest,
) error {
	log := c.log.Function("GrantRole")

	if !actor.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}

	role := Role(request.Role)
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, request.Role)
	}

	if request.UserID == uuid.Nil {
		return fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}

	if _, err := c.userRepo.GetByID(ctx, request.UserID.String()); err != nil {
		return apperrors.FromDatabase(err)
	}

	if err := c.userRepo.GrantRole(ctx, request.UserID, role); err != nil {
		return apperrors.FromDatabase(err)
	}

	log.Info("Role granted", "userID", request.UserID, "role", role, "grantedBy", actor.ID)
	return nil
}
