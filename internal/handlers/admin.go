// admin.go
//
// Feedback, rating link and analytics service for multi-tenant business dashboards
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of smart-reviewer.
// smart-reviewer is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// smart-reviewer is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with smart-reviewer.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/types"
	"github.com/localnerve/smart-reviewer/internal/utils"
	"github.com/rs/zerolog"
)

// AdminHandler manages owners and reads every review. Mounted behind the admin key.
type AdminHandler struct {
	Store *services.Store
	Log   zerolog.Logger
}

// CreateUserRequest registers an owner with its dashboard login
type CreateUserRequest struct {
	services.OwnerProfile
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UpdateUserRequest overwrites an owner's profile. Empty username or password leave
// the stored value unchanged.
type UpdateUserRequest struct {
	ID types.FlexID `json:"id" validate:"required"`
	services.OwnerProfile
	Username string `json:"username" validate:"max=255"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

// DeleteUserRequest names the owner to delete
type DeleteUserRequest struct {
	ID types.FlexID `json:"id" validate:"required"`
}

// CreateUserResponse carries the new owner's ids
type CreateUserResponse struct {
	Ok       bool   `json:"ok"`
	ID       uint64 `json:"id"`
	UniqueID string `json:"uniqueId"`
}

// ListUsers handles GET /api/users
// @Summary List owners
// @Description Every owner with its login and review count, newest first
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Success 200 {array} services.OwnerSummary
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	owners, err := h.Store.ListOwners(c.UserContext())
	if err != nil {
		return failure(c, h.Log, err, "listUsers")
	}
	return utils.SuccessResponse(c, owners, fiber.StatusOK)
}

// CreateUser handles POST /api/users
// @Summary Register an owner
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param user body CreateUserRequest true "Owner and login"
// @Success 201 {object} CreateUserResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in CreateUserRequest
	if err := parseBody(c, &in); err != nil {
		return failure(c, h.Log, err, "createUser")
	}

	hash, err := h.Store.HashPassword(in.Password)
	if err != nil {
		return failure(c, h.Log, err, "createUser")
	}

	owner, err := h.Store.CreateOwner(c.UserContext(), services.OwnerInput{
		OwnerProfile: in.OwnerProfile,
		Username:     in.Username,
		PasswordHash: hash,
	})
	if err != nil {
		return failure(c, h.Log, err, "createUser")
	}

	return c.Status(fiber.StatusCreated).JSON(CreateUserResponse{
		Ok:       true,
		ID:       owner.ID,
		UniqueID: owner.UniqueID,
	})
}

// UpdateUser handles PUT /api/users
// @Summary Update an owner
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param user body UpdateUserRequest true "Owner profile, optional login and password"
// @Success 200 {object} utils.OKResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	var in UpdateUserRequest
	if err := parseBody(c, &in); err != nil {
		return failure(c, h.Log, err, "updateUser")
	}

	upd := services.OwnerUpdate{
		Profile:  in.OwnerProfile,
		Username: types.NonEmpty(in.Username),
	}
	if in.Password != "" {
		hash, err := h.Store.HashPassword(in.Password)
		if err != nil {
			return failure(c, h.Log, err, "updateUser")
		}
		upd.PasswordHash = types.Some(hash)
	}

	if err := h.Store.UpdateOwner(c.UserContext(), in.ID.Uint64(), upd); err != nil {
		return failure(c, h.Log, err, "updateUser")
	}

	return utils.OKResponse(c, fiber.StatusOK, nil)
}

// DeleteUser handles DELETE /api/users
// @Summary Delete an owner and all of its data
// @Description Deleting an unknown id succeeds
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param user body DeleteUserRequest true "Owner id"
// @Success 200 {object} utils.OKResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	var in DeleteUserRequest
	if err := parseBody(c, &in); err != nil {
		return failure(c, h.Log, err, "deleteUser")
	}

	if err := h.Store.DeleteOwner(c.UserContext(), in.ID.Uint64()); err != nil {
		return failure(c, h.Log, err, "deleteUser")
	}

	return utils.OKResponse(c, fiber.StatusOK, nil)
}

// ListReviews handles GET /api/admin/reviews
// @Summary List every review
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Success 200 {array} services.Review
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /admin/reviews [get]
func (h *AdminHandler) ListReviews(c *fiber.Ctx) error {
	reviews, err := h.Store.ListAllReviews(c.UserContext())
	if err != nil {
		return failure(c, h.Log, err, "listReviews")
	}
	return utils.SuccessResponse(c, reviews, fiber.StatusOK)
}
