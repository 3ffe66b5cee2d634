package dto

import (
	"encoding/json"
	"testing"
)

func TestOptionalTriState(t *testing.T) {
	var req UpdateLostReportRequest
	payload := `{"city": "Paris", "state": null}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !req.City.Set || !req.City.Valid || req.City.Value != "Paris" {
		t.Errorf("city: %+v, want present with value", req.City)
	}
	if !req.State.Set || req.State.Valid {
		t.Errorf("state: %+v, want present as null", req.State)
	}
	if req.Country.Set {
		t.Errorf("country: %+v, want absent", req.Country)
	}
	if req.Empty() {
		t.Error("payload with fields must not be Empty")
	}
}

func TestOptionalEmptyPayload(t *testing.T) {
	var req UpdateLostReportRequest
	if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.Empty() {
		t.Error("empty object must report Empty")
	}
}

func TestOptionalDateCarriedVerbatim(t *testing.T) {
	// The date stays a string at this layer; format validation happens in
	// the workflow so updates accept the same forms as creation.
	var req UpdateLostReportRequest
	if err := json.Unmarshal([]byte(`{"date_lost": "2024-01-01"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.DateLost.Set || !req.DateLost.Valid || req.DateLost.Value != "2024-01-01" {
		t.Errorf("date_lost: %+v", req.DateLost)
	}
}

func TestOptionalBadValue(t *testing.T) {
	var req UpdateLostReportRequest
	if err := json.Unmarshal([]byte(`{"city": 42}`), &req); err == nil {
		t.Error("expected unmarshal error for mistyped field")
	}
}
