// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/ridewise/internal/features"
	"github.com/tomtom215/ridewise/internal/logging"
	"github.com/tomtom215/ridewise/internal/metrics"
	"github.com/tomtom215/ridewise/internal/store"
)

// recentFeedbackLimit is how many entries GET /feedback/recent returns.
const recentFeedbackLimit = 5

// StatusResponse acknowledges a write.
type StatusResponse struct {
	Status   string `json:"status"`
	ReviewID int    `json:"review_id,omitempty"`
}

// FeedbackListResponse wraps feedback entries.
type FeedbackListResponse struct {
	Feedback []store.Feedback `json:"feedback"`
}

// ReviewListResponse wraps reviews.
type ReviewListResponse struct {
	Reviews []store.Review `json:"reviews"`
}

// ratingMessage maps store rating errors to client messages.
func ratingMessage(err error) string {
	if errors.Is(err, store.ErrInvalidRating) {
		return msgRatingRange
	}
	return msgRatingInteger
}

// SubmitFeedback handles POST /feedback.
//
// The dashboard sends the text as "message"; it is accepted as an alias
// for "comment".
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, msgNoBody, err)
		return
	}

	comment := stringField(payload, "comment")
	if comment == "" {
		comment = stringField(payload, "message")
	}
	if features.Missing(payload["rating"]) || comment == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, msgMissingFeedback, nil)
		return
	}

	rating, err := store.ParseRating(payload["rating"])
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, ratingMessage(err), nil)
		return
	}

	req := FeedbackRequest{Rating: rating, Comment: comment}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	fb, err := h.store.AddFeedback(r.Context(), store.Feedback{Rating: req.Rating, Comment: req.Comment})
	metrics.RecordStoreOperation("add_feedback", time.Since(start), err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to save feedback", err)
		return
	}

	logging.Ctx(r.Context()).Info().Int("rating", fb.Rating).Msg("Feedback received")
	respondJSON(w, http.StatusCreated, StatusResponse{Status: "success"})
}

// ListFeedback handles GET /feedback. Entries are in submission order.
func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items, err := h.store.ListFeedback(r.Context())
	metrics.RecordStoreOperation("list_feedback", time.Since(start), err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to load feedback", err)
		return
	}
	respondJSON(w, http.StatusOK, FeedbackListResponse{Feedback: nonNilFeedback(items)})
}

// RecentFeedback handles GET /feedback/recent: the latest entries, newest first.
func (h *Handler) RecentFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	items, err := h.store.RecentFeedback(r.Context(), recentFeedbackLimit)
	metrics.RecordStoreOperation("recent_feedback", time.Since(start), err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to load feedback", err)
		return
	}
	respondJSON(w, http.StatusOK, FeedbackListResponse{Feedback: nonNilFeedback(items)})
}

// SubmitReview handles POST /api/reviews.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, msgNoBody, err)
		return
	}

	email := stringField(payload, "user_email")
	comment := stringField(payload, "comment")
	if email == "" || comment == "" || features.Missing(payload["rating"]) {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, msgMissingReview, nil)
		return
	}

	rating, err := store.ParseRating(payload["rating"])
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, ratingMessage(err), nil)
		return
	}

	req := ReviewRequest{UserEmail: email, Rating: rating, Comment: comment}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	id, err := h.store.AddReview(r.Context(), store.Review{
		UserEmail: req.UserEmail,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	metrics.RecordStoreOperation("add_review", time.Since(start), err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to save review", err)
		return
	}

	logging.Ctx(r.Context()).Info().Int("review_id", id).Int("rating", req.Rating).Msg("Review received")
	respondJSON(w, http.StatusCreated, StatusResponse{Status: "success", ReviewID: id})
}

// ListReviews handles GET /api/reviews?user_email=.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("user_email"))
	if email == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, msgEmailQueryMissing, nil)
		return
	}

	start := time.Now()
	reviews, err := h.store.ListReviews(r.Context(), email)
	metrics.RecordStoreOperation("list_reviews", time.Since(start), err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to load reviews", err)
		return
	}
	respondJSON(w, http.StatusOK, ReviewListResponse{Reviews: nonNilReviews(reviews)})
}

// ListAllReviews handles GET /api/reviews/all, newest first.
func (h *Handler) ListAllReviews(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reviews, err := h.store.ListAllReviews(r.Context())
	metrics.RecordStoreOperation("list_all_reviews", time.Since(start), err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to load reviews", err)
		return
	}
	respondJSON(w, http.StatusOK, ReviewListResponse{Reviews: nonNilReviews(reviews)})
}

// JSON clients expect [] rather than null for empty lists.
func nonNilFeedback(items []store.Feedback) []store.Feedback {
	if items == nil {
		return []store.Feedback{}
	}
	return items
}

func nonNilReviews(items []store.Review) []store.Review {
	if items == nil {
		return []store.Review{}
	}
	return items
}
