package handler

import (
	"strings"

	"github.com/Brownie44l1/shipping-http/internal/request"
	"github.com/Brownie44l1/shipping-http/internal/response"
)

const apiPrefix = "/api/"

// API answers /api/<key> with the record Store holds under key, as JSON.
type API struct {
	Store Store
}

func NewAPI(store Store) *API {
	return &API{Store: store}
}

func (a *API) Handle(req *request.Request) *response.Response {
	key := strings.TrimPrefix(stripQuery(req.Path()), apiPrefix)

	record, ok := a.Store.Find(key)
	if !ok {
		return response.New(response.StatusNotFound, nil, []byte("No route found"))
	}

	resp, err := response.JSON(response.StatusOK, record)
	if err != nil {
		return response.New(response.StatusInternalServerError, nil, nil)
	}
	return resp
}
