package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDecodeInformations(t *testing.T) {
	raw := []byte(`{"brand":"Renault","model":"Clio V","fuel":"essence","din":90,"doors":5}`)
	inf := DecodeInformations(raw)
	if inf.Brand != "Renault" || inf.Model != "Clio V" || inf.Din != 90 || inf.Doors != 5 {
		t.Errorf("decoded = %+v", inf)
	}
	// keys absent from the stored text default to the zero value
	if inf.Gearbox != "" || inf.Fiscal != 0 || inf.Sites != 0 {
		t.Errorf("missing keys not defaulted: %+v", inf)
	}
}

func TestDecodeInformationsInvalid(t *testing.T) {
	for _, raw := range [][]byte{nil, {}, []byte("not json"), []byte(`[1,2]`)} {
		if inf := DecodeInformations(raw); inf != (Informations{}) {
			t.Errorf("raw %q: got %+v, want zero value", raw, inf)
		}
	}
}

func TestInformationsMarshalAllKeys(t *testing.T) {
	out, err := json.Marshal(Informations{Brand: "Peugeot"})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"din", "fuel", "type", "brand", "color", "doors", "model", "sites", "gearbox", "fiscal"} {
		if _, ok := m[key]; !ok {
			t.Errorf("key %q missing from marshalled sheet", key)
		}
	}
}

func TestDecodeEquipments(t *testing.T) {
	got := DecodeEquipments([]byte(`["GPS","Climatisation"]`))
	if !reflect.DeepEqual(got, []string{"GPS", "Climatisation"}) {
		t.Errorf("got %v", got)
	}
	for _, raw := range [][]byte{nil, {}, []byte("oops"), []byte(`{"a":1}`), []byte("null")} {
		got := DecodeEquipments(raw)
		if got == nil {
			t.Errorf("raw %q: nil slice, want empty", raw)
		}
		if len(got) != 0 {
			t.Errorf("raw %q: got %v, want empty", raw, got)
		}
	}
}
