package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/hongminglow/developers-api/internal/http/respond"
	"github.com/hongminglow/developers-api/internal/middleware"
	"github.com/hongminglow/developers-api/internal/models"
	"github.com/hongminglow/developers-api/internal/models/dto"
	"github.com/hongminglow/developers-api/internal/service"
)

const maxBodyBytes = 1 << 20

// DevelopersPath is the collection route, API version prefix included.
const DevelopersPath = "/api/v1/developers"

// DeveloperService is the business layer the handler delegates to.
type DeveloperService interface {
	Create(ctx context.Context, d models.Developer) (models.Developer, error)
	Update(ctx context.Context, d models.Developer) (models.Developer, error)
	GetAll(ctx context.Context) ([]models.Developer, error)
	FindAllActiveBySpecialty(ctx context.Context, specialty string) ([]models.Developer, error)
	GetByID(ctx context.Context, id int64) (models.Developer, bool, error)
	SoftDeleteByID(ctx context.Context, id int64) error
	HardDeleteByID(ctx context.Context, id int64) error
}

// DeveloperHandler owns the /developers endpoints.
type DeveloperHandler struct {
	svc DeveloperService
	log logrus.FieldLogger
}

// NewDeveloperHandler constructs the handler.
func NewDeveloperHandler(svc DeveloperService, log logrus.FieldLogger) *DeveloperHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DeveloperHandler{svc: svc, log: log}
}

// Register attaches the developer routes to the root router, so a method mismatch
// reaches r.MethodNotAllowedHandler instead of a subrouter's 404.
func (h *DeveloperHandler) Register(r *mux.Router) {
	r.HandleFunc(DevelopersPath, h.handleCreate).Methods(http.MethodPost)
	r.HandleFunc(DevelopersPath, h.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc(DevelopersPath, h.handleList).Methods(http.MethodGet)
	r.HandleFunc(DevelopersPath+"/specialty/{specialty}", h.handleBySpecialty).Methods(http.MethodGet)
	r.HandleFunc(DevelopersPath+"/{id}", h.handleGet).Methods(http.MethodGet)
	r.HandleFunc(DevelopersPath+"/{id}", h.handleDelete).Methods(http.MethodDelete)
}

func (h *DeveloperHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.Developer
	if !h.decode(w, r, &req) {
		return
	}
	created, err := h.svc.Create(r.Context(), req.ToModel())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromModel(created))
}

func (h *DeveloperHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.Developer
	if !h.decode(w, r, &req) {
		return
	}
	updated, err := h.svc.Update(r.Context(), req.ToModel())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromModel(updated))
}

func (h *DeveloperHandler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.GetAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromModels(all))
}

func (h *DeveloperHandler) handleBySpecialty(w http.ResponseWriter, r *http.Request) {
	active, err := h.svc.FindAllActiveBySpecialty(r.Context(), mux.Vars(r)["specialty"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromModels(active))
}

func (h *DeveloperHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, found, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	// the service treats an unknown id as an empty result; the API reports it as 404
	if !found {
		h.writeServiceError(w, r, service.ErrNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FromModel(d))
}

func (h *DeveloperHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	hard := false
	if raw := r.URL.Query().Get("isHard"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidRequest, "isHard must be a boolean")
			return
		}
		hard = parsed
	}

	var err error
	if hard {
		err = h.svc.HardDeleteByID(r.Context(), id)
	} else {
		err = h.svc.SoftDeleteByID(r.Context(), id)
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.Empty(w, http.StatusOK)
}

func (h *DeveloperHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidRequest, "invalid JSON payload")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

// writeServiceError is the single place a service error becomes an HTTP response.
func (h *DeveloperHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *service.Error
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Code == service.CodeNotFound {
			status = http.StatusNotFound
		}
		respond.Error(w, status, domainErr.Code, domainErr.Message)
		return
	}

	h.log.WithError(err).
		WithField("request_id", middleware.RequestIDFromContext(r.Context())).
		WithField("method", r.Method).
		WithField("path", r.URL.Path).
		Error("developer request failed")
	respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "internal server error")
}
