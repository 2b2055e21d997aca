package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/wellbore-architecture/internal/domain/wellbore"
	"github.com/yungbote/wellbore-architecture/internal/http/response"
	"github.com/yungbote/wellbore-architecture/internal/platform/apierr"
	"github.com/yungbote/wellbore-architecture/internal/platform/ctxutil"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
	"github.com/yungbote/wellbore-architecture/internal/services"
)

type WellBoreArchitectureHandlerDeps struct {
	Log     *logger.Logger
	Service services.WellBoreArchitectureService
}

type WellBoreArchitectureHandler struct {
	log *logger.Logger
	svc services.WellBoreArchitectureService
}

func NewWellBoreArchitectureHandler(deps WellBoreArchitectureHandlerDeps) *WellBoreArchitectureHandler {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &WellBoreArchitectureHandler{
		log: log.With("handler", "WellBoreArchitectureHandler"),
		svc: deps.Service,
	}
}

// GET /WellBoreArchitecture
func (h *WellBoreArchitectureHandler) ListIDs(c *gin.Context) {
	ids, err := h.svc.ListIDs(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, ids)
}

// GET /WellBoreArchitecture/MetaInfo
func (h *WellBoreArchitectureHandler) ListMetaInfo(c *gin.Context) {
	out, err := h.svc.ListMetaInfo(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /WellBoreArchitecture/LightData
func (h *WellBoreArchitectureHandler) ListLight(c *gin.Context) {
	out, err := h.svc.ListLight(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /WellBoreArchitecture/HeavyData
func (h *WellBoreArchitectureHandler) ListAll(c *gin.Context) {
	out, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /WellBoreArchitecture/:id
func (h *WellBoreArchitectureHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	w, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, w)
}

// GET /WellBoreArchitecture/:id/Realization
func (h *WellBoreArchitectureHandler) Realization(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	r, err := h.svc.Realize(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, r)
}

// POST /WellBoreArchitecture
func (h *WellBoreArchitectureHandler) Create(c *gin.Context) {
	w, ok := h.body(c)
	if !ok {
		return
	}
	if err := h.svc.Create(c.Request.Context(), w); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// PUT /WellBoreArchitecture/:id
func (h *WellBoreArchitectureHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	w, ok := h.body(c)
	if !ok {
		return
	}
	if err := h.svc.UpdateByID(c.Request.Context(), id, w); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// DELETE /WellBoreArchitecture/:id
func (h *WellBoreArchitectureHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteByID(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *WellBoreArchitectureHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", services.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// body decodes the request payload. A JSON null yields a nil record, which
// the service rejects. gin's binding validator is bypassed since it panics on
// a nil pointer target.
func (h *WellBoreArchitectureHandler) body(c *gin.Context) (*types.WellBoreArchitecture, bool) {
	var w *types.WellBoreArchitecture
	if c.Request.Body == nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", errors.New("request body required"))
		return nil, false
	}
	if err := json.NewDecoder(c.Request.Body).Decode(&w); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return nil, false
	}
	return w, true
}

func (h *WellBoreArchitectureHandler) fail(c *gin.Context, err error) {
	ae := toAPIError(err)
	if ae.Status >= http.StatusInternalServerError {
		h.log.Error("Request failed", append([]interface{}{"path", c.FullPath(), "error", err}, ctxutil.LogFields(c.Request.Context())...)...)
	}
	response.RespondAPIError(c, ae)
}

func toAPIError(err error) *apierr.Error {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		return apierr.New(http.StatusBadRequest, "invalid_id", err)
	case errors.Is(err, services.ErrInvalidPayload):
		return apierr.New(http.StatusBadRequest, "invalid_payload", err)
	case errors.Is(err, services.ErrIDMismatch):
		return apierr.New(http.StatusBadRequest, "id_mismatch", err)
	case errors.Is(err, services.ErrGateRejected):
		return apierr.New(http.StatusBadRequest, "rejected", err)
	case errors.Is(err, services.ErrNotFound):
		return apierr.New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrConflict):
		return apierr.New(http.StatusConflict, "conflict", err)
	case errors.Is(err, services.ErrStore):
		return apierr.New(http.StatusInternalServerError, "store_error", errors.New("internal server error"))
	default:
		return apierr.From(err)
	}
}
