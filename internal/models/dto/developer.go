package dto

import "github.com/hongminglow/developers-api/internal/models"

// Developer is the JSON shape of a developer on the wire.
type Developer struct {
	ID        *int64        `json:"id,omitempty"`
	FirstName string        `json:"firstName,omitempty"`
	LastName  string        `json:"lastName,omitempty"`
	Email     string        `json:"email,omitempty"`
	Specialty string        `json:"specialty,omitempty"`
	Status    models.Status `json:"status,omitempty"`
}

// FromModel maps a stored record to its wire shape.
func FromModel(d models.Developer) Developer {
	out := Developer{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Specialty: d.Specialty,
		Status:    d.Status,
	}
	if d.ID != 0 {
		id := d.ID
		out.ID = &id
	}
	return out
}

// FromModels maps a slice, keeping order. It never returns nil.
func FromModels(ds []models.Developer) []Developer {
	out := make([]Developer, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromModel(d))
	}
	return out
}

// ToModel maps the wire shape back to a record.
func (d Developer) ToModel() models.Developer {
	out := models.Developer{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Specialty: d.Specialty,
		Status:    d.Status,
	}
	if d.ID != nil {
		out.ID = *d.ID
	}
	return out
}
