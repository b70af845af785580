// auth.go
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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/smart-reviewer/internal/metrics"
	"github.com/localnerve/smart-reviewer/internal/middleware"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/utils"
	"github.com/rs/zerolog"
)

// AuthHandler handles business dashboard login and logout
type AuthHandler struct {
	Store        *services.Store
	Tokens       *services.TokenManager
	CookieSecure bool
	Log          zerolog.Logger
}

// LoginRequest is the dashboard login body
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginResponse is returned with the session cookie
type LoginResponse struct {
	Ok           bool   `json:"ok"`
	BusinessID   uint64 `json:"businessId"`
	PropertyName string `json:"propertyName"`
	FirstLogin   bool   `json:"firstLogin"`
}

// Login handles POST /api/auth/login
// @Summary Log in to the business dashboard
// @Description Sets the businessToken session cookie on success
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in LoginRequest
	if err := parseBody(c, &in); err != nil {
		return failure(c, h.Log, err, "login")
	}

	principal, err := h.Store.Authenticate(c.UserContext(), in.Username, in.Password)
	if err != nil {
		metrics.Logins.WithLabelValues(utils.KindName(err)).Inc()
		return failure(c, h.Log, err, "login")
	}

	token, expires, err := h.Tokens.Issue(principal)
	if err != nil {
		return failure(c, h.Log, err, "login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(h.Tokens.TTL() / time.Second),
		HTTPOnly: true,
		Secure:   h.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	metrics.Logins.WithLabelValues("success").Inc()

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Ok:           true,
		BusinessID:   principal.OwnerID,
		PropertyName: principal.PropertyName,
		FirstLogin:   principal.FirstLogin,
	})
}

// Logout handles POST /api/auth/logout
// @Summary Log out of the business dashboard
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.OKResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return utils.OKResponse(c, fiber.StatusOK, nil)
}
