package models

import (
	"reflect"
	"strings"
	"testing"
)

func TestRequestDecided(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{RequestPending, false},
		{RequestAccepted, true},
		{RequestRejected, true},
	}

	for _, tc := range cases {
		r := CourseRequest{Status: tc.status}
		if got := r.Decided(); got != tc.want {
			t.Errorf("Decided() with status %s = %v, want %v", tc.status, got, tc.want)
		}
	}
}

// At most one open request per (student, course) is a database
// constraint: both columns must share the same partial unique index so
// concurrent submits cannot each insert a pending row.
func TestOpenRequestIndexSpansPair(t *testing.T) {
	typ := reflect.TypeOf(CourseRequest{})

	for _, name := range []string{"StudentID", "CourseID"} {
		field, ok := typ.FieldByName(name)
		if !ok {
			t.Fatalf("CourseRequest has no field %s", name)
		}
		tag := field.Tag.Get("gorm")
		if !strings.Contains(tag, "index:idx_request_open,unique") {
			t.Errorf("%s is missing the unique open-request index, gorm tag = %q", name, tag)
		}
		if !strings.Contains(tag, "where:status = 'pending' OR status = 'accepted'") {
			t.Errorf("%s index is not partial over open statuses, gorm tag = %q", name, tag)
		}
	}
}
