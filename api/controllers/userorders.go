package controllers

import (
	"net/http"

	"github.com/tacocrew/tacocrew-backend/api/responses"
	"github.com/tacocrew/tacocrew-backend/api/validators"
	userorder "github.com/tacocrew/tacocrew-backend/internal/userorders"
	"github.com/tacocrew/tacocrew-backend/pkg/logger"
	"github.com/tacocrew/tacocrew-backend/pkg/types"
)

type upsertUserOrderRequest struct {
	Tacos    []types.Taco     `json:"tacos"`
	Extras   []types.LineItem `json:"extras"`
	Drinks   []types.LineItem `json:"drinks"`
	Desserts []types.LineItem `json:"desserts"`
}

func (r upsertUserOrderRequest) toItems() types.OrderItems {
	return types.OrderItems{
		Tacos:    r.Tacos,
		Extras:   r.Extras,
		Drinks:   r.Drinks,
		Desserts: r.Desserts,
	}
}

// UserOrderUpsert replaces the caller's order inside the group order.
func UserOrderUpsert(svc userorder.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		groupOrderID, err := validators.ParsePathUUID(r, "groupOrderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertUserOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Upsert(r.Context(), groupOrderID, actorID, payload.toItems())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// UserOrderGet returns one user order by id.
func UserOrderGet(svc userorder.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(r, "userOrderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetUserOrder(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// UserOrderMine returns the caller's order inside the group order.
func UserOrderMine(svc userorder.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		groupOrderID, err := validators.ParsePathUUID(r, "groupOrderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetByGroupAndUser(r.Context(), groupOrderID, actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// UserOrderDelete removes the caller's order while the window is still open.
func UserOrderDelete(svc userorder.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		groupOrderID, err := validators.ParsePathUUID(r, "groupOrderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), groupOrderID, actorID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
