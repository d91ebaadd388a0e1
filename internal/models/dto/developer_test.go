package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hongminglow/developers-api/internal/models"
)

func TestFromModelOmitsAbsentFields(t *testing.T) {
	b, err := json.Marshal(FromModel(models.Developer{FirstName: "John", LastName: "Doe"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(b)
	if strings.Contains(body, "null") {
		t.Fatalf("expected no null fields, got %s", body)
	}
	if strings.Contains(body, `"id"`) || strings.Contains(body, `"status"`) {
		t.Fatalf("expected id and status omitted, got %s", body)
	}
	if body != `{"firstName":"John","lastName":"Doe"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestToModelKeepsID(t *testing.T) {
	id := int64(42)
	d := Developer{ID: &id, Email: "a@b.c", Status: models.StatusDeleted}
	m := d.ToModel()
	if m.ID != 42 || m.Email != "a@b.c" || m.Status != models.StatusDeleted {
		t.Fatalf("unexpected model %+v", m)
	}
	back := FromModel(m)
	if back.ID == nil || *back.ID != 42 {
		t.Fatalf("expected id 42 on round trip, got %v", back.ID)
	}
}

func TestFromModelsPreservesOrder(t *testing.T) {
	out := FromModels([]models.Developer{{ID: 3}, {ID: 1}, {ID: 2}})
	if len(out) != 3 || *out[0].ID != 3 || *out[1].ID != 1 || *out[2].ID != 2 {
		t.Fatalf("order not preserved: %+v", out)
	}
	if empty := FromModels(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}
