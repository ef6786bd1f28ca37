package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Mbarca89/vete-front-v2/internal/backend"
	"github.com/go-chi/chi/v5"
)

// PetSource is the slice of the backend client the pet lookup needs.
type PetSource interface {
	Pet(ctx context.Context, publicID string) (*backend.PetRecord, error)
}

type PetHandler struct {
	pets       PetSource
	siteOrigin string
}

func NewPetHandler(pets PetSource, siteOrigin string) *PetHandler {
	return &PetHandler{pets: pets, siteOrigin: siteOrigin}
}

type MedicalHistoryDTO struct {
	backend.MedicalHistory
	FileURL string `json:"fileUrl,omitempty"`
}

type PetResponseDTO struct {
	Pet            backend.Pet         `json:"pet"`
	Age            string              `json:"age,omitempty"`
	MedicalHistory []MedicalHistoryDTO `json:"medicalHistory"`
	Vaccines       []backend.Vaccine   `json:"vaccine"`
}

// Lookup serves the public per-pet medical record page.
func (h *PetHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicId")
	if publicID == "" {
		respondError(w, http.StatusBadRequest, "missing_public_id", "publicId is required")
		return
	}

	record, err := h.pets.Pet(r.Context(), publicID)
	if err != nil {
		respondBackendError(w, err)
		return
	}

	history := make([]MedicalHistoryDTO, 0, len(record.MedicalHistory))
	for _, entry := range record.MedicalHistory {
		dto := MedicalHistoryDTO{MedicalHistory: entry}
		if entry.File != "" {
			dto.FileURL = backend.FileDownloadURL(h.siteOrigin, entry.File)
		}
		history = append(history, dto)
	}

	vaccines := record.Vaccines
	if vaccines == nil {
		vaccines = []backend.Vaccine{}
	}

	respondJSON(w, http.StatusOK, PetResponseDTO{
		Pet:            record.Pet,
		Age:            record.Pet.Age(time.Now()),
		MedicalHistory: history,
		Vaccines:       vaccines,
	})
}
