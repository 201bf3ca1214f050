package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDateAcceptsShortAndRFC3339(t *testing.T) {
	cases := map[string]string{
		`"2024-05-31"`:           "2024-05-31",
		`"2024-05-31T17:00:00Z"`: "2024-05-31",
	}
	for in, want := range cases {
		var d Date
		if err := json.Unmarshal([]byte(in), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if d.String() != want {
			t.Fatalf("unmarshal %s: got=%s want=%s", in, d, want)
		}
	}

	var d Date
	if err := json.Unmarshal([]byte(`"31/05/2024"`), &d); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestDateMarshalsShortForm(t *testing.T) {
	b, err := json.Marshal(struct {
		Day *Date `json:"day"`
	}{Day: DateFromTime(ptr(time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC)))})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"day":"2024-01-02"}` {
		t.Fatalf("unexpected json: %s", b)
	}
}

func TestOptionalTracksPresence(t *testing.T) {
	var in struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
		C Optional[string] `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"x","b":null}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.A.Set || in.A.Value == nil || *in.A.Value != "x" {
		t.Fatalf("a: %+v", in.A)
	}
	if !in.B.Set || in.B.Value != nil {
		t.Fatalf("b should be an explicit null: %+v", in.B)
	}
	if in.C.Set {
		t.Fatalf("c should be absent: %+v", in.C)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if Status("Hoàn thành").Valid() || Status("").Valid() {
		t.Fatalf("unexpected valid status")
	}
}

func ptr[T any](v T) *T { return &v }

func TestTimestampAcceptsBareDate(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-06-01"`), &ts); err != nil {
		t.Fatalf("unmarshal bare date: %v", err)
	}
	if want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC); !ts.Equal(want) {
		t.Fatalf("got=%v want=%v", ts.Time, want)
	}

	for _, in := range []string{`""`, `"01/06/2024"`, `42`} {
		err := json.Unmarshal([]byte(in), &ts)
		var derr *DateError
		if !errors.As(err, &derr) {
			t.Fatalf("%s: expected DateError, got %v", in, err)
		}
	}
}
