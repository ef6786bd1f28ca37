package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mbarca89/vete-front-v2/internal/backend"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPets struct {
	record      *backend.PetRecord
	err         error
	gotPublicID string
}

func (s *stubPets) Pet(_ context.Context, publicID string) (*backend.PetRecord, error) {
	s.gotPublicID = publicID
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func newPetRouter(pets PetSource) http.Handler {
	h := NewPetHandler(pets, "https://veterinariadelparque.com.ar")
	r := chi.NewRouter()
	r.Get("/pets/{publicId}", h.Lookup)
	return r
}

func TestPetHandler_Lookup(t *testing.T) {
	stub := &stubPets{record: &backend.PetRecord{
		Pet: backend.Pet{
			ID:       7,
			PublicID: "abc123",
			Name:     "Rocco",
			Species:  "Perro",
			Born:     "2020-03-15",
		},
		MedicalHistory: []backend.MedicalHistory{
			{ID: 1, Date: "2024-05-01", Type: "Consulta", File: "/otp/fileStorage/estudio.pdf"},
			{ID: 2, Date: "2024-06-01", Type: "Control"},
		},
		Vaccines: []backend.Vaccine{{ID: 3, Name: "Antirrábica", PetID: 7}},
	}}

	rec := httptest.NewRecorder()
	newPetRouter(stub).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/abc123", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", stub.gotPublicID)

	var resp PetResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Rocco", resp.Pet.Name)
	assert.NotEmpty(t, resp.Age)

	require.Len(t, resp.MedicalHistory, 2)
	assert.Equal(t,
		"https://veterinariadelparque.com.ar/api/v1/public/files/download?path=%2Fotp%2FfileStorage%2Festudio.pdf",
		resp.MedicalHistory[0].FileURL)
	assert.Empty(t, resp.MedicalHistory[1].FileURL)

	require.Len(t, resp.Vaccines, 1)
}

func TestPetHandler_NotFound(t *testing.T) {
	stub := &stubPets{err: &backend.Error{Kind: backend.KindHTTP, Message: "pet not found", Status: 404}}

	rec := httptest.NewRecorder()
	newPetRouter(stub).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPetHandler_NilCollectionsAreArrays(t *testing.T) {
	stub := &stubPets{record: &backend.PetRecord{
		Pet: backend.Pet{ID: 1, PublicID: "x", Name: "Mishi", Born: "not-a-date"},
	}}

	rec := httptest.NewRecorder()
	newPetRouter(stub).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/x", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"medicalHistory":[]`)
	assert.Contains(t, body, `"vaccine":[]`)
	assert.NotContains(t, body, `"age"`)
}
