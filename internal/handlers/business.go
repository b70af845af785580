// business.go
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
	"github.com/localnerve/smart-reviewer/internal/middleware"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/types"
	"github.com/localnerve/smart-reviewer/internal/utils"
	"github.com/rs/zerolog"
)

// BusinessHandler serves the authenticated dashboard. Every call is scoped to the
// owner id taken from the verified session, never from the request.
type BusinessHandler struct {
	Store *services.Store
	Log   zerolog.Logger
}

// ChangePasswordRequest is the self-service password change body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=72"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

func (h *BusinessHandler) ownerID(c *fiber.Ctx) (uint64, error) {
	p := middleware.Principal(c)
	if p == nil {
		return 0, types.NewDataError("business.principal", types.ErrAuth, "", nil)
	}
	return p.OwnerID, nil
}

// GetDashboard handles GET /api/business/dashboard
// @Summary Get the business dashboard
// @Description Reviews and daily review, scan and redirect series for the logged in owner
// @Tags Business
// @Produce json
// @Success 200 {object} services.Dashboard
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /business/dashboard [get]
func (h *BusinessHandler) GetDashboard(c *fiber.Ctx) error {
	ownerID, err := h.ownerID(c)
	if err != nil {
		return failure(c, h.Log, err, "getDashboard")
	}

	dash, err := h.Store.Dashboard(c.UserContext(), ownerID)
	if err != nil {
		return failure(c, h.Log, err, "getDashboard")
	}

	return utils.SuccessResponse(c, dash, fiber.StatusOK)
}

// ChangePassword handles PUT /api/business/password
// @Summary Change the dashboard password
// @Tags Business
// @Accept json
// @Produce json
// @Param passwords body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} utils.OKResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /business/password [put]
func (h *BusinessHandler) ChangePassword(c *fiber.Ctx) error {
	ownerID, err := h.ownerID(c)
	if err != nil {
		return failure(c, h.Log, err, "changePassword")
	}

	var in ChangePasswordRequest
	if err := parseBody(c, &in); err != nil {
		return failure(c, h.Log, err, "changePassword")
	}

	hash, err := h.Store.HashPassword(in.NewPassword)
	if err != nil {
		return failure(c, h.Log, err, "changePassword")
	}

	if err := h.Store.ChangeSecret(c.UserContext(), ownerID, in.CurrentPassword, hash); err != nil {
		return failure(c, h.Log, err, "changePassword")
	}

	return utils.OKResponse(c, fiber.StatusOK, nil)
}
