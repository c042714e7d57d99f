package handler

import (
	"net/http"

	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/pkg/response"

	"github.com/gorilla/mux"
)

// Fields handles GET /fields/{entity}
func Fields(w http.ResponseWriter, r *http.Request) {
	fields, err := domain.DescribeFields(domain.Entity(mux.Vars(r)["entity"]))
	if err != nil {
		response.FromError(w, "Unknown entity", err)
		return
	}
	response.Success(w, fields)
}
