// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package web

import (
	"net/http"

	"github.com/quizcard/credcheck/internal/credential"
)

type emailRequest struct {
	Email string `json:"email"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type confirmationRequest struct {
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

type validResponse struct {
	Valid bool `json:"valid"`
}

type strengthResponse struct {
	Score          int                      `json:"score"`
	Label          credential.StrengthLabel `json:"label"`
	LocalizedLabel string                   `json:"localized_label"`
	Percent        float64                  `json:"percent"`
}

func (h *Handler) strengthResponse(v *credential.Validator, s credential.Strength) strengthResponse {
	h.metrics.RecordStrength(string(s.Label))
	return strengthResponse{
		Score:          s.Score,
		Label:          s.Label,
		LocalizedLabel: v.LocalizedLabel(s),
		Percent:        s.Percent(),
	}
}

func (h *Handler) handleEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	valid := credential.ValidateEmail(req.Email)
	h.metrics.RecordValidation(credential.FieldEmail, valid)
	writeJSON(w, http.StatusOK, validResponse{Valid: valid})
}

func (h *Handler) handlePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	res := h.validatorFor(r).ValidatePassword(req.Password)
	h.metrics.RecordValidation(credential.FieldPassword, res.Valid)
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleStrength(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	v := h.validatorFor(r)
	writeJSON(w, http.StatusOK, h.strengthResponse(v, v.ScoreStrength(req.Password)))
}

func (h *Handler) handleName(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	res := h.validatorFor(r).ValidateName(req.Name)
	h.metrics.RecordValidation(credential.FieldName, res.Valid)
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleConfirmation(w http.ResponseWriter, r *http.Request) {
	var req confirmationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	valid := credential.ConfirmationMatches(req.Password, req.Confirmation)
	h.metrics.RecordValidation(credential.FieldConfirmation, valid)
	writeJSON(w, http.StatusOK, validResponse{Valid: valid})
}

// signupRequest mirrors the signup form field names.
type signupRequest struct {
	Name         string `json:"nome"`
	Email        string `json:"email"`
	Password     string `json:"senha"`
	Confirmation string `json:"confirmacao"`
}

type signupResponse struct {
	credential.FormResult
	Strength strengthResponse `json:"strength"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	v := h.validatorFor(r)
	res := v.ValidateSignup(credential.SignupForm{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	h.metrics.RecordValidation(credential.FieldName, res.Name.Valid)
	h.metrics.RecordValidation(credential.FieldEmail, res.Email.Valid)
	h.metrics.RecordValidation(credential.FieldPassword, res.Password.Valid)
	h.metrics.RecordValidation(credential.FieldConfirmation, res.Confirmation.Valid)

	writeJSON(w, http.StatusOK, signupResponse{
		FormResult: res,
		Strength:   h.strengthResponse(v, res.Strength),
	})
}
