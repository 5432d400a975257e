package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	var payload struct {
		DueDate Date  `json:"dueDate"`
		PaidAt  *Date `json:"paidAt,omitempty"`
	}
	if err := json.Unmarshal([]byte(`{"dueDate":"2024-01-31"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.DueDate.Year() != 2024 || payload.DueDate.Month() != time.January || payload.DueDate.Day() != 31 {
		t.Fatalf("unexpected date %v", payload.DueDate)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"dueDate":"2024-01-31"}` {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestDateAcceptsTimestampsAndNull(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-05T13:45:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal timestamp: %v", err)
	}
	if d.String() != "2024-03-05" {
		t.Fatalf("expected truncated day, got %s", d)
	}

	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !d.IsZero() {
		t.Fatalf("null should reset date")
	}

	if err := json.Unmarshal([]byte(`"31/01/2024"`), &d); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}
