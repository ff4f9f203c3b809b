package crew

import (
	"reflect"
	"testing"
)

func TestWithLead(t *testing.T) {
	tests := []struct {
		name    string
		lead    string
		members []string
		want    []string
	}{
		{"lead appended", "L", []string{"a", "b"}, []string{"a", "b", "L"}},
		{"lead already present", "a", []string{"a", "b"}, []string{"a", "b"}},
		{"duplicates removed", "L", []string{"a", "a", "L", "b"}, []string{"a", "L", "b"}},
		{"empty members", "L", nil, []string{"L"}},
		{"blank ids dropped", "L", []string{"", "a"}, []string{"a", "L"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithLead(tt.lead, tt.members); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("WithLead = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeValid(t *testing.T) {
	for _, ct := range []Type{TypeMechanic, TypeTruckDriver, TypeLabor, TypeTasco} {
		if !ct.Valid() {
			t.Fatalf("%s should be valid", ct)
		}
	}
	if Type("PILOT").Valid() {
		t.Fatal("PILOT should be invalid")
	}
}
