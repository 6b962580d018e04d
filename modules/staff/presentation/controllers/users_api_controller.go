package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"staffledger/modules/staff/domain/aggregates/staff"
	"staffledger/modules/staff/presentation/mappers"
	"staffledger/modules/staff/presentation/viewmodels"
	"staffledger/modules/staff/services"
)

const maxListLimit = 1000

type UsersAPIController struct {
	directory *services.DirectoryService
	basePath  string
}

func NewUsersAPIController(directory *services.DirectoryService) *UsersAPIController {
	return &UsersAPIController{
		directory: directory,
		basePath:  "/api/users",
	}
}

func (c *UsersAPIController) Key() string {
	return c.basePath
}

func (c *UsersAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{userID}", c.Get).Methods(http.MethodGet)
}

func (c *UsersAPIController) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > maxListLimit {
			writeAPIError(w, r, http.StatusBadRequest, "USERS_INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	users, err := c.directory.ListUsers(r.Context(), limit)
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "USERS_INTERNAL", "internal error")
		return
	}

	out := make([]viewmodels.User, 0, len(users))
	for _, u := range users {
		out = append(out, mappers.FlatUserToViewModel(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *UsersAPIController) Get(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	u, err := c.directory.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, staff.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "USERS_NOT_FOUND", "user not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "USERS_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, mappers.FlatUserToViewModel(u))
}
