package httpserver

import (
	"errors"
	"net/http"

	checkouterrors "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/domain/errors"
	checkouthttp "github.com/00kaito/DevBytes/contexts/commerce/checkout-service/transport/http"
)

func (s *Server) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	principal := s.requirePrincipal(w, r)
	if principal == nil {
		return
	}
	var req checkouthttp.CreatePaymentIntentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.checkout.Handler.CreatePaymentIntentHandler(r.Context(), principal.UserID, req)
	if err != nil {
		writeCheckoutDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleConfirmPurchase(w http.ResponseWriter, r *http.Request) {
	principal := s.requirePrincipal(w, r)
	if principal == nil {
		return
	}
	var req checkouthttp.ConfirmPurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.checkout.Handler.ConfirmPurchaseHandler(r.Context(), principal.UserID, req)
	if err != nil {
		writeCheckoutDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	principal := s.requirePrincipal(w, r)
	if principal == nil {
		return
	}
	resp, err := s.checkout.Handler.ListPurchasesHandler(r.Context(), principal.UserID)
	if err != nil {
		writeCheckoutDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeCheckoutDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkouterrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, checkouterrors.ErrPodcastNotFound):
		writeError(w, http.StatusNotFound, "podcast_not_found", err.Error())
	case errors.Is(err, checkouterrors.ErrAlreadyPurchased):
		writeError(w, http.StatusConflict, "already_purchased", err.Error())
	case errors.Is(err, checkouterrors.ErrPurchaseNotFound):
		writeError(w, http.StatusNotFound, "purchase_not_found", err.Error())
	case errors.Is(err, checkouterrors.ErrPaymentNotSettled):
		writeError(w, http.StatusConflict, "payment_not_settled", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
