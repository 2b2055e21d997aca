package wellbore

import (
	"encoding/json"
	"fmt"
	"strings"
)

type SurfaceSectionType int

const (
	SurfaceSectionUnknown SurfaceSectionType = iota
	SurfaceSectionBOP
	SurfaceSectionHighPressureRiser
	SurfaceSectionLowPressureRiser
	SurfaceSectionMarineRiser
	SurfaceSectionExpansionJoint
	SurfaceSectionBellNipple
	SurfaceSectionDiverter
	SurfaceSectionRotatingControlDevice
)

var surfaceSectionTypeNames = []string{
	"Unknown",
	"BOP",
	"HighPressureRiser",
	"LowPressureRiser",
	"MarineRiser",
	"ExpansionJoint",
	"BellNipple",
	"Diverter",
	"RotatingControlDevice",
}

func (t SurfaceSectionType) String() string { return enumName(surfaceSectionTypeNames, int(t)) }

func (t SurfaceSectionType) MarshalJSON() ([]byte, error) {
	return marshalEnum(surfaceSectionTypeNames, int(t), "SurfaceSectionType")
}

func (t *SurfaceSectionType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(surfaceSectionTypeNames, data, "SurfaceSectionType")
	if err != nil {
		return err
	}
	*t = SurfaceSectionType(v)
	return nil
}

type SideElementType int

const (
	SideElementUnknown SideElementType = iota
	SideElementPipe
	SideElementHose
	SideElementGateValve
	SideElementChoke
	SideElementPump
)

var sideElementTypeNames = []string{"Unknown", "Pipe", "Hose", "GateValve", "Choke", "Pump"}

func (t SideElementType) String() string { return enumName(sideElementTypeNames, int(t)) }

func (t SideElementType) MarshalJSON() ([]byte, error) {
	return marshalEnum(sideElementTypeNames, int(t), "SideElementType")
}

func (t *SideElementType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(sideElementTypeNames, data, "SideElementType")
	if err != nil {
		return err
	}
	*t = SideElementType(v)
	return nil
}

// FluidType names the fluid filling a depth interval above ground level.
type FluidType int

const (
	FluidUnknown FluidType = iota
	FluidAir
	FluidWater
	FluidSeaWater
	FluidDrillingFluid
)

var fluidTypeNames = []string{"Unknown", "Air", "Water", "SeaWater", "DrillingFluid"}

func (t FluidType) String() string { return enumName(fluidTypeNames, int(t)) }

func (t FluidType) MarshalJSON() ([]byte, error) {
	return marshalEnum(fluidTypeNames, int(t), "FluidType")
}

func (t *FluidType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(fluidTypeNames, data, "FluidType")
	if err != nil {
		return err
	}
	*t = FluidType(v)
	return nil
}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%d", v)
	}
	return names[v]
}

func marshalEnum(names []string, v int, kind string) ([]byte, error) {
	if v < 0 || v >= len(names) {
		return nil, fmt.Errorf("invalid %s value %d", kind, v)
	}
	return json.Marshal(names[v])
}

// unmarshalEnum accepts the case-insensitive member name or its ordinal.
func unmarshalEnum(names []string, data []byte, kind string) (int, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		for i, n := range names {
			if strings.EqualFold(n, strings.TrimSpace(s)) {
				return i, nil
			}
		}
		return 0, fmt.Errorf("unknown %s %q", kind, s)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, fmt.Errorf("invalid %s: %s", kind, string(data))
	}
	if n < 0 || n >= len(names) {
		return 0, fmt.Errorf("invalid %s value %d", kind, n)
	}
	return n, nil
}
