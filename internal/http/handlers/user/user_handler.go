package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appuser "assustadus/internal/app/user"
	dom "assustadus/internal/domain/user"
	"assustadus/internal/http/requests"
	"assustadus/internal/http/responses"
	"assustadus/internal/logging"
)

type Handler struct {
	service appuser.Service
	logger  logging.Logger
}

func NewHandler(service appuser.Service, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "user_http_handler"),
	}
}

// Routes mounts the user endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// userID parses the {id} path param. A value that is not a UUID cannot name
// any stored user, so it is answered like a missing one.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(w, http.StatusNotFound, dom.ErrNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

// Create godoc
// @Summary  Create a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      CreateUserRequest  true  "New user"
// @Success  201   {object}  apidocs.UserResponse
// @Failure  400   {object}  apidocs.ErrorResponse
// @Failure  409   {object}  apidocs.ErrorResponse
// @Router   /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !requests.BindJSON(w, r, &req) {
		return
	}

	dto, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		responses.WriteServiceError(w, h.logger, err)
		return
	}

	responses.WriteJSON(w, http.StatusCreated, dto)
}

// List godoc
// @Summary  List all users
// @Tags     users
// @Produce  json
// @Success  200  {array}   apidocs.UserResponse
// @Failure  500  {object}  apidocs.ErrorResponse
// @Router   /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		responses.WriteServiceError(w, h.logger, err)
		return
	}

	responses.WriteJSON(w, http.StatusOK, users)
}

// GetByID godoc
// @Summary  Get a user
// @Tags     users
// @Produce  json
// @Param    id   path      string  true  "User ID"  format(uuid)
// @Success  200  {object}  apidocs.UserResponse
// @Failure  404  {object}  apidocs.ErrorResponse
// @Router   /users/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	dto, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		responses.WriteServiceError(w, h.logger, err)
		return
	}

	responses.WriteJSON(w, http.StatusOK, dto)
}

// Update godoc
// @Summary  Partially update a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    id    path      string             true  "User ID"  format(uuid)
// @Param    body  body      UpdateUserRequest  false  "Fields to change; phone null removes it"
// @Success  200   {object}  apidocs.UserResponse
// @Failure  400   {object}  apidocs.ErrorResponse
// @Failure  404   {object}  apidocs.ErrorResponse
// @Failure  409   {object}  apidocs.ErrorResponse
// @Router   /users/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !requests.BindOptionalJSON(w, r, &req) {
		return
	}

	dto, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		responses.WriteServiceError(w, h.logger, err)
		return
	}

	responses.WriteJSON(w, http.StatusOK, dto)
}

// Delete godoc
// @Summary  Delete a user
// @Tags     users
// @Produce  json
// @Param    id   path      string  true  "User ID"  format(uuid)
// @Success  200  {object}  apidocs.DeletedResponse
// @Failure  404  {object}  apidocs.ErrorResponse
// @Router   /users/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	res, err := h.service.Delete(r.Context(), id)
	if err != nil {
		responses.WriteServiceError(w, h.logger, err)
		return
	}

	responses.WriteJSON(w, http.StatusOK, res)
}
