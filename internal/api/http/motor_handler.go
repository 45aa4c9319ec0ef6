package http

import (
	"net/http"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/service"

	"github.com/gorilla/mux"
)

type MotorHandler struct {
	svc service.MotorService
}

func NewMotorHandler(svc service.MotorService) *MotorHandler {
	return &MotorHandler{svc: svc}
}

func (h *MotorHandler) Register(r *mux.Router) {
	r.HandleFunc("/motor-types", h.ListTypes).Methods(http.MethodGet).Name("motorTypes.list")
	r.HandleFunc("/motor-types", h.CreateType).Methods(http.MethodPost).Name("motorTypes.create")
	r.HandleFunc("/motor-types/{id:[0-9]+}", h.GetType).Methods(http.MethodGet).Name("motorTypes.get")
	r.HandleFunc("/motor-types/{id:[0-9]+}", h.UpdateType).Methods(http.MethodPut).Name("motorTypes.update")
	r.HandleFunc("/motor-types/{id:[0-9]+}", h.DeleteType).Methods(http.MethodDelete).Name("motorTypes.delete")

	r.HandleFunc("/motor-units", h.ListUnits).Methods(http.MethodGet).Name("motorUnits.list")
	r.HandleFunc("/motor-units", h.CreateUnit).Methods(http.MethodPost).Name("motorUnits.create")
	r.HandleFunc("/motor-units/{id:[0-9]+}", h.GetUnit).Methods(http.MethodGet).Name("motorUnits.get")
	r.HandleFunc("/motor-units/{id:[0-9]+}", h.UpdateUnit).Methods(http.MethodPut).Name("motorUnits.update")
	r.HandleFunc("/motor-units/{id:[0-9]+}", h.DeleteUnit).Methods(http.MethodDelete).Name("motorUnits.delete")
	r.HandleFunc("/motor-units/{id:[0-9]+}/status", h.SetUnitStatus).Methods(http.MethodPut).Name("motorUnits.status")
}

func (h *MotorHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListTypes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if types == nil {
		types = []domain.MotorType{}
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *MotorHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var mt domain.MotorType
	if !decodeJSON(w, r, &mt) {
		return
	}
	mt.ID = 0
	if err := h.svc.CreateType(r.Context(), &mt); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mt)
}

func (h *MotorHandler) GetType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	mt, err := h.svc.GetType(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mt)
}

func (h *MotorHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var mt domain.MotorType
	if !decodeJSON(w, r, &mt) {
		return
	}
	mt.ID = id
	if err := h.svc.UpdateType(r.Context(), &mt); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mt)
}

func (h *MotorHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteType(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MotorHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.svc.ListUnits(r.Context(), queryInt32(r, "type_id", 0), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if units == nil {
		units = []domain.MotorUnit{}
	}
	writeJSON(w, http.StatusOK, units)
}

func (h *MotorHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var unit domain.MotorUnit
	if !decodeJSON(w, r, &unit) {
		return
	}
	unit.ID = 0
	if err := h.svc.CreateUnit(r.Context(), &unit); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, unit)
}

func (h *MotorHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	unit, err := h.svc.GetUnit(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, unit)
}

func (h *MotorHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var unit domain.MotorUnit
	if !decodeJSON(w, r, &unit) {
		return
	}
	unit.ID = id
	if err := h.svc.UpdateUnit(r.Context(), &unit); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, unit)
}

func (h *MotorHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteUnit(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MotorHandler) SetUnitStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status domain.MotorUnitStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	unit, err := h.svc.SetUnitStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, unit)
}
