package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPet_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/public/pet", r.URL.Path)
		assert.Equal(t, "abc-123", r.URL.Query().Get("publicId"))
		w.Write([]byte(`{
			"pet":{"id":9,"publicId":"abc-123","name":"Luna","race":"Caniche","gender":"hembra","species":"perro","weight":6.5,"born":"2021-03-15","ownerName":"Ana","ownerPhone":"1123456789"},
			"medicalHistory":[{"id":1,"date":"2024-02-01","type":"consulta","notes":"control","description":"chequeo anual","medicine":"","file":"/otp/fileStorage/estudio.pdf"}],
			"vaccine":[{"id":2,"date":"2024-03-01","name":"antirrábica","notes":"","petId":9}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	record, err := c.Pet(context.Background(), "abc-123")
	require.NoError(t, err)

	assert.Equal(t, "Luna", record.Pet.Name)
	require.Len(t, record.MedicalHistory, 1)
	assert.Equal(t, "/otp/fileStorage/estudio.pdf", record.MedicalHistory[0].File)
	require.Len(t, record.Vaccines, 1)
	assert.Equal(t, "antirrábica", record.Vaccines[0].Name)
}

func TestPet_NotFoundPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"pet not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, nil)
	_, err := c.Pet(context.Background(), "nope")

	be, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindHTTP, be.Kind)
	assert.Equal(t, http.StatusNotFound, be.Status)
	assert.Equal(t, "pet not found", be.Message)
}

func TestPetAge(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		born string
		want string
	}{
		{"months only", "2026-01-10", "8 meses"},
		{"one month", "2026-08-20", "1 mes"},
		{"exact years", "2024-09-01", "2 años"},
		{"years and months", "2025-06-01", "1 año y 3 meses"},
		{"month borrow", "2024-12-05", "1 año y 9 meses"},
		{"rfc3339 born", "2024-09-01T00:00:00Z", "2 años"},
		{"unparsable", "ayer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Pet{Born: tc.born}
			assert.Equal(t, tc.want, p.Age(now))
		})
	}
}

func TestFileDownloadURL(t *testing.T) {
	got := FileDownloadURL("https://veterinariadelparque.com.ar", "/otp/fileStorage/estudio final.pdf")
	assert.Equal(t,
		"https://veterinariadelparque.com.ar/api/v1/public/files/download?path=%2Fotp%2FfileStorage%2Festudio+final.pdf",
		got)
}
