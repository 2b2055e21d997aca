package wellbore

// Realization types mirror the entity tree with every distribution collapsed
// to a single value. They are computed on demand and never stored.

// GroundLevelDepth has no source in the aggregate and is always null.
type WellBoreArchitectureRealization struct {
	GroundLevelDepth       *float64                               `json:"GroundLevelDepth"`
	WellHead               *WellHeadRealization                   `json:"WellHead"`
	FluidsAboveGroundLevel []*WellBoreArchitectureFluidRealization `json:"FluidsAboveGroundLevel"`
	SurfaceSections        []*SurfaceSectionRealization           `json:"SurfaceSections"`
	CasingSections         []*CasingSectionRealization            `json:"CasingSections"`
}

type WellHeadRealization struct {
	MaxOD             *float64 `json:"MaxOD"`
	MinOD             *float64 `json:"MinOD"`
	Depth             *float64 `json:"Depth"`
	CasingHangerDepth *float64 `json:"CasingHangerDepth"`
	TubingHangerDepth *float64 `json:"TubingHangerDepth"`
}

type WellBoreArchitectureFluidRealization struct {
	Fluid FluidType `json:"Fluid"`
	Depth *float64  `json:"Depth"`
}

type SurfaceSectionRealization struct {
	Type                    SurfaceSectionType          `json:"Type"`
	SectionLength           *float64                    `json:"SectionLength"`
	BodyOD                  *float64                    `json:"BodyOD"`
	BodyID                  *float64                    `json:"BodyID"`
	ConnectionType          *string                     `json:"ConnectionType"`
	Grade                   *string                     `json:"Grade"`
	MaterialDensity         *float64                    `json:"MaterialDensity"`
	YoungModulus            *float64                    `json:"YoungModulus"`
	LinearWeight            *float64                    `json:"LinearWeight"`
	TensileStrength         *float64                    `json:"TensileStrength"`
	BurstPressure           *float64                    `json:"BurstPressure"`
	CollapsePressure        *float64                    `json:"CollapsePressure"`
	YieldStress             *float64                    `json:"YieldStress"`
	MakeUpTorqueRecommended *float64                    `json:"MakeUpTorqueRecommended"`
	SideConnectors          []*SideConnectorRealization `json:"SideConnectors"`
}

type SideConnectorRealization struct {
	Position         *float64                `json:"Position"`
	VerticalDepth    *float64                `json:"VerticalDepth"`
	FirstSideElement *SideElementRealization `json:"FirstSideElement"`
}

type SideElementRealization struct {
	Name             *string         `json:"Name"`
	Type             SideElementType `json:"Type"`
	Length           *float64        `json:"Length"`
	TopVerticalDepth *float64        `json:"TopVerticalDepth"`
	OD               *float64        `json:"OD"`
	ID               *float64        `json:"ID"`
}

type CasingSectionRealization struct {
	TopDepth               *float64                          `json:"TopDepth"`
	Length                 *float64                          `json:"Length"`
	TopCementDepth         *float64                          `json:"TopCementDepth"`
	CasingSectionElements  []*CasingSectionElementRealization `json:"CasingSectionElements"`
	CasingSectionSizeTable []*BoreHoleSizeRealization         `json:"CasingSectionSizeTable"`
	OpenHoleSection        *OpenHoleSectionRealization        `json:"OpenHoleSection"`
}

type CasingSectionElementRealization struct {
	BodyOD                  *float64 `json:"BodyOD"`
	BodyID                  *float64 `json:"BodyID"`
	CollarOD                *float64 `json:"CollarOD"`
	JointLength             *float64 `json:"JointLength"`
	SectionLength           *float64 `json:"SectionLength"`
	MaxDLS                  *float64 `json:"MaxDLS"`
	ConnectionType          *string  `json:"ConnectionType"`
	Grade                   *string  `json:"Grade"`
	MaterialDensity         *float64 `json:"MaterialDensity"`
	YoungModulus            *float64 `json:"YoungModulus"`
	LinearWeight            *float64 `json:"LinearWeight"`
	TensileStrength         *float64 `json:"TensileStrength"`
	TorsionalStrength       *float64 `json:"TorsionalStrength"`
	BurstPressure           *float64 `json:"BurstPressure"`
	CollapsePressure        *float64 `json:"CollapsePressure"`
	YieldStress             *float64 `json:"YieldStress"`
	MakeUpTorqueRecommended *float64 `json:"MakeUpTorqueRecommended"`
}

type OpenHoleSectionRealization struct {
	HoleSizes []*BoreHoleSizeRealization `json:"HoleSizes"`
}

type BoreHoleSizeRealization struct {
	HoleSize *float64 `json:"HoleSize"`
	Length   *float64 `json:"Length"`
}
