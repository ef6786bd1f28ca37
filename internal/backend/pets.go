package backend

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Pet is the public profile exposed by the per-pet lookup page.
type Pet struct {
	ID         int64   `json:"id"`
	PublicID   string  `json:"publicId"`
	Name       string  `json:"name"`
	Race       string  `json:"race"`
	Gender     string  `json:"gender"`
	Species    string  `json:"species"`
	Weight     float64 `json:"weight"`
	Born       string  `json:"born"`
	Thumbnail  string  `json:"thumbnail,omitempty"`
	OwnerName  string  `json:"ownerName"`
	OwnerPhone string  `json:"ownerPhone"`
}

type MedicalHistory struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Notes       string `json:"notes"`
	Description string `json:"description"`
	Medicine    string `json:"medicine"`
	File        string `json:"file,omitempty"`
}

type Vaccine struct {
	ID    int64  `json:"id"`
	Date  string `json:"date"`
	Name  string `json:"name"`
	Notes string `json:"notes"`
	PetID int64  `json:"petId"`
}

// PetRecord is the full public lookup payload: profile plus medical history
// and vaccination records.
type PetRecord struct {
	Pet            Pet              `json:"pet"`
	MedicalHistory []MedicalHistory `json:"medicalHistory"`
	Vaccines       []Vaccine        `json:"vaccine"`
}

// Pet looks up a pet by its opaque public id.
func (c *Client) Pet(ctx context.Context, publicID string) (*PetRecord, error) {
	path := "/api/v1/public/pet?publicId=" + url.QueryEscape(publicID)
	record, err := fetchJSON[PetRecord](ctx, c, path, requestOptions{})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FileDownloadURL builds the public download link for a medical history
// attachment path like "/otp/fileStorage/x.pdf".
func FileDownloadURL(origin, filePath string) string {
	return fmt.Sprintf("%s/api/v1/public/files/download?path=%s", origin, url.QueryEscape(filePath))
}

var bornLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Age renders the pet's age in the site's wording ("2 años y 3 meses"). The
// empty string means the birth date could not be parsed.
func (p Pet) Age(now time.Time) string {
	var birth time.Time
	var err error
	for _, layout := range bornLayouts {
		birth, err = time.Parse(layout, p.Born)
		if err == nil {
			break
		}
	}
	if err != nil {
		return ""
	}

	years := now.Year() - birth.Year()
	months := int(now.Month()) - int(birth.Month())

	switch {
	case years == 0:
		return fmt.Sprintf("%d %s", months, pluralize(months, "mes", "meses"))
	case months < 0:
		return fmt.Sprintf("%d %s y %d meses", years-1, pluralize(years-1, "año", "años"), 12+months)
	case months == 0:
		return fmt.Sprintf("%d %s", years, pluralize(years, "año", "años"))
	default:
		return fmt.Sprintf("%d %s y %d %s", years, pluralize(years, "año", "años"),
			months, pluralize(months, "mes", "meses"))
	}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
