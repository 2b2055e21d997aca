package wellbore

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEnumsEncodeAsNames(t *testing.T) {
	raw, err := json.Marshal(WellBoreArchitectureFluid{Fluid: FluidSeaWater})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"Fluid":"SeaWater"`) {
		t.Fatalf("enum not encoded by name: %s", raw)
	}
}

func TestEnumsDecodeNamesAndOrdinals(t *testing.T) {
	var s SurfaceSection
	if err := json.Unmarshal([]byte(`{"Type":"marineriser"}`), &s); err != nil {
		t.Fatalf("decode name: %v", err)
	}
	if s.Type != SurfaceSectionMarineRiser {
		t.Fatalf("got=%s", s.Type)
	}
	var e SideElement
	if err := json.Unmarshal([]byte(`{"Type":3}`), &e); err != nil {
		t.Fatalf("decode ordinal: %v", err)
	}
	if e.Type != SideElementGateValve {
		t.Fatalf("got=%s", e.Type)
	}
	if err := json.Unmarshal([]byte(`{"Type":"Teapot"}`), &e); err == nil {
		t.Fatalf("expected error for unknown name")
	}
	if err := json.Unmarshal([]byte(`{"Type":42}`), &e); err == nil {
		t.Fatalf("expected error for out of range ordinal")
	}
}

func TestJSONRoundTripKeepsNullVersusEmpty(t *testing.T) {
	name := "Test A"
	created := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	wellBoreID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	in := &WellBoreArchitecture{
		MetaInfo:     &MetaInfo{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111")},
		Name:         &name,
		CreationDate: &created,
		WellBoreID:   &wellBoreID,
		WellHead:     &WellHead{MaxOD: Scalar(0.8), Depth: Gaussian(-1.5)},
		SurfaceSections: []SurfaceSection{{
			Type:           SurfaceSectionBOP,
			SideConnectors: []SideConnector{},
		}},
		CasingSections: []CasingSection{{
			CasingSectionElements: nil,
			OpenHoleSection:       &OpenHoleSection{HoleSizes: []BoreHoleSize{}},
		}},
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out WellBoreArchitecture
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, &out) {
		t.Fatalf("round trip mismatch:\nin=%+v\nout=%+v", in, out)
	}
	if out.FluidsAboveGroundLevel != nil {
		t.Fatalf("nil list decoded as non-nil")
	}
	if out.SurfaceSections[0].SideConnectors == nil {
		t.Fatalf("empty list decoded as nil")
	}
}

func TestLightCopiesIdentityFields(t *testing.T) {
	name := "Test A"
	w := NewWellBoreArchitecture(uuid.New())
	w.Name = &name
	l := w.Light()
	if l.MetaInfo.ID != w.ID() || *l.Name != name || l.Description != nil {
		t.Fatalf("unexpected light projection: %+v", l)
	}
}
