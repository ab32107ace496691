package types

import (
	"encoding/json"
	"testing"
)

func TestPackEntityID(t *testing.T) {
	tests := []struct {
		name  string
		gen   uint32
		index uint32
	}{
		{"First slot", 0, 1},
		{"Reused slot", 3, 17},
		{"Max values", maskGen, maskIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := PackEntityID(tt.gen, tt.index)
			if id.Generation() != tt.gen {
				t.Errorf("Generation() = %v, want %v", id.Generation(), tt.gen)
			}
			if id.Index() != tt.index {
				t.Errorf("Index() = %v, want %v", id.Index(), tt.index)
			}
		})
	}
}

func TestEntityID_String(t *testing.T) {
	if got := NilEntityID.String(); got != "<nil>" {
		t.Errorf("String() = %q, want <nil>", got)
	}
	if got := PackEntityID(2, 5).String(); got != "#5.2" {
		t.Errorf("String() = %q, want #5.2", got)
	}
}

func TestEntityID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    EntityID
		wantErr bool
	}{
		{name: "String form", data: []byte(`"42"`), want: EntityID(42)},
		{name: "Number form", data: []byte(`42`), want: EntityID(42)},
		{name: "Empty string", data: []byte(`""`), want: NilEntityID},
		{name: "Null", data: []byte(`null`), want: NilEntityID},
		{name: "Invalid format", data: []byte(`"abc"`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id EntityID
			err := id.UnmarshalJSON(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.want {
				t.Errorf("UnmarshalJSON() = %v, want %v", id, tt.want)
			}
		})
	}
}

func TestEntityID_MapKeyRoundTrip(t *testing.T) {
	original := map[EntityID]string{
		PackEntityID(0, 1): "player",
		PackEntityID(7, 9): "orc",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var decoded map[EntityID]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(decoded) != 2 || decoded[PackEntityID(7, 9)] != "orc" {
		t.Errorf("map round-trip failed: %v", decoded)
	}
}

// FuzzPackEntityID: упаковка и распаковка полей обратимы.
func FuzzPackEntityID(f *testing.F) {
	f.Add(uint32(0), uint32(1))
	f.Add(uint32(4294967295), uint32(4294967295))

	f.Fuzz(func(t *testing.T, gen uint32, index uint32) {
		id := PackEntityID(gen, index)
		if id.Generation() != gen || id.Index() != index {
			t.Fatalf("pack mismatch: gen=%d index=%d got %v", gen, index, id)
		}
	})
}
