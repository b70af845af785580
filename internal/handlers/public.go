// public.go
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
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/smart-reviewer/internal/metrics"
	"github.com/localnerve/smart-reviewer/internal/services"
	"github.com/localnerve/smart-reviewer/internal/utils"
	"github.com/rs/zerolog"
)

// PublicHandler serves the unauthenticated customer-facing routes. Possession of the
// opaque owner id is the only credential.
type PublicHandler struct {
	Store *services.Store
	Log   zerolog.Logger
}

// AnalyticsEventRequest identifies the owner an analytics event belongs to
type AnalyticsEventRequest struct {
	UniqueID string `json:"uniqueId" validate:"required,max=36"`
}

// RatingPage is the public profile shown on the customer rating page
type RatingPage struct {
	UniqueID              string `json:"uniqueId"`
	OwnerName             string `json:"ownerName"`
	PropertyName          string `json:"propertyName"`
	PropertyAddress       string `json:"propertyAddress"`
	GoogleMapLink         string `json:"googleMapLink"`
	ContactNumber         string `json:"contactNumber"`
	CustomFeedbackMessage string `json:"customFeedbackMessage"`
}

// SubmitFeedback handles POST /api/feedback
// @Summary Submit customer feedback
// @Description Store one review for the owner identified by uniqueId
// @Tags Public
// @Accept json
// @Produce json
// @Param feedback body services.FeedbackInput true "Review"
// @Success 201 {object} utils.OKResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /feedback [post]
func (h *PublicHandler) SubmitFeedback(c *fiber.Ctx) error {
	var in services.FeedbackInput
	if err := parseBody(c, &in); err != nil {
		return failure(c, h.Log, err, "submitFeedback")
	}

	if _, err := h.Store.CreateFeedback(c.UserContext(), in); err != nil {
		return failure(c, h.Log, err, "submitFeedback")
	}

	metrics.FeedbackSubmitted.WithLabelValues(strconv.Itoa(in.Rating)).Inc()
	return utils.OKResponse(c, fiber.StatusCreated, nil)
}

// RecordQRScan handles POST /api/analytics/qr-scan
// @Summary Record a QR code scan
// @Tags Public
// @Accept json
// @Produce json
// @Param event body AnalyticsEventRequest true "Owner"
// @Success 200 {object} utils.OKResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /analytics/qr-scan [post]
func (h *PublicHandler) RecordQRScan(c *fiber.Ctx) error {
	return h.recordEvent(c, services.EventScan, "recordQRScan")
}

// RecordGoogleRedirect handles POST /api/analytics/google-redirect
// @Summary Record a redirect to the Google review page
// @Tags Public
// @Accept json
// @Produce json
// @Param event body AnalyticsEventRequest true "Owner"
// @Success 200 {object} utils.OKResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /analytics/google-redirect [post]
func (h *PublicHandler) RecordGoogleRedirect(c *fiber.Ctx) error {
	return h.recordEvent(c, services.EventRedirect, "recordGoogleRedirect")
}

func (h *PublicHandler) recordEvent(c *fiber.Ctx, kind services.EventKind, errorType string) error {
	var in AnalyticsEventRequest
	if err := parseBody(c, &in); err != nil {
		return failure(c, h.Log, err, errorType)
	}

	if err := h.Store.RecordAnalyticsEvent(c.UserContext(), in.UniqueID, kind); err != nil {
		return failure(c, h.Log, err, errorType)
	}

	metrics.AnalyticsEvents.WithLabelValues(string(kind)).Inc()
	return utils.OKResponse(c, fiber.StatusOK, nil)
}

// GetRatingPage handles GET /api/rating/:uniqueId
// @Summary Get the public rating page profile
// @Tags Public
// @Produce json
// @Param uniqueId path string true "Opaque owner id"
// @Success 200 {object} RatingPage
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /rating/{uniqueId} [get]
func (h *PublicHandler) GetRatingPage(c *fiber.Ctx) error {
	owner, err := h.Store.GetOwnerByUniqueID(c.UserContext(), c.Params("uniqueId"))
	if err != nil {
		return failure(c, h.Log, err, "getRatingPage")
	}

	return utils.SuccessResponse(c, RatingPage{
		UniqueID:              owner.UniqueID,
		OwnerName:             owner.OwnerName,
		PropertyName:          owner.PropertyName,
		PropertyAddress:       owner.PropertyAddress,
		GoogleMapLink:         owner.GoogleMapLink,
		ContactNumber:         owner.ContactNumber,
		CustomFeedbackMessage: owner.CustomFeedbackMessage,
	}, fiber.StatusOK)
}
