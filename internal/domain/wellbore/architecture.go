package wellbore

import (
	"time"

	"github.com/google/uuid"
)

// MetaInfo identifies a record and where it is served from.
type MetaInfo struct {
	ID               uuid.UUID `json:"ID"`
	HttpHostName     *string   `json:"HttpHostName"`
	HttpHostBasePath *string   `json:"HttpHostBasePath"`
	HttpEndPoint     *string   `json:"HttpEndPoint"`
}

// WellBoreArchitecture is the aggregate root. The whole tree is stored as a
// single JSON document and replaced as a unit on update.
type WellBoreArchitecture struct {
	MetaInfo               *MetaInfo                   `json:"MetaInfo"`
	Name                   *string                     `json:"Name"`
	Description            *string                     `json:"Description"`
	CreationDate           *time.Time                  `json:"CreationDate"`
	LastModificationDate   *time.Time                  `json:"LastModificationDate"`
	WellBoreID             *uuid.UUID                  `json:"WellBoreID"`
	WellHead               *WellHead                   `json:"WellHead"`
	FluidsAboveGroundLevel []WellBoreArchitectureFluid `json:"FluidsAboveGroundLevel"`
	SurfaceSections        []SurfaceSection            `json:"SurfaceSections"`
	CasingSections         []CasingSection             `json:"CasingSections"`
}

// WellBoreArchitectureLight is the listing projection of a record.
type WellBoreArchitectureLight struct {
	MetaInfo             *MetaInfo  `json:"MetaInfo"`
	Name                 *string    `json:"Name"`
	Description          *string    `json:"Description"`
	CreationDate         *time.Time `json:"CreationDate"`
	LastModificationDate *time.Time `json:"LastModificationDate"`
}

// NewWellBoreArchitecture returns a record with an empty well head and
// empty (non-nil) section lists.
func NewWellBoreArchitecture(id uuid.UUID) *WellBoreArchitecture {
	return &WellBoreArchitecture{
		MetaInfo:               &MetaInfo{ID: id},
		WellHead:               &WellHead{},
		FluidsAboveGroundLevel: []WellBoreArchitectureFluid{},
		SurfaceSections:        []SurfaceSection{},
		CasingSections:         []CasingSection{},
	}
}

// ID returns MetaInfo.ID, or uuid.Nil when MetaInfo is missing.
func (w *WellBoreArchitecture) ID() uuid.UUID {
	if w == nil || w.MetaInfo == nil {
		return uuid.Nil
	}
	return w.MetaInfo.ID
}

// Calculate is the admission gate applied on create and update: a record is
// only accepted once it has at least one surface section.
func (w *WellBoreArchitecture) Calculate() bool {
	return w != nil && len(w.SurfaceSections) > 0
}

func (w *WellBoreArchitecture) Light() *WellBoreArchitectureLight {
	if w == nil {
		return nil
	}
	return &WellBoreArchitectureLight{
		MetaInfo:             w.MetaInfo,
		Name:                 w.Name,
		Description:          w.Description,
		CreationDate:         w.CreationDate,
		LastModificationDate: w.LastModificationDate,
	}
}

type WellHead struct {
	MaxOD             *ScalarDrillingProperty   `json:"MaxOD"`
	MinOD             *ScalarDrillingProperty   `json:"MinOD"`
	Depth             *GaussianDrillingProperty `json:"Depth"`
	CasingHangerDepth *ScalarDrillingProperty   `json:"CasingHangerDepth"`
	TubingHangerDepth *ScalarDrillingProperty   `json:"TubingHangerDepth"`
}

type WellBoreArchitectureFluid struct {
	Fluid FluidType                 `json:"Fluid"`
	Depth *GaussianDrillingProperty `json:"Depth"`
}

type SurfaceSection struct {
	Type                    SurfaceSectionType        `json:"Type"`
	SectionLength           *GaussianDrillingProperty `json:"SectionLength"`
	BodyOD                  *GaussianDrillingProperty `json:"BodyOD"`
	BodyID                  *GaussianDrillingProperty `json:"BodyID"`
	ConnectionType          *string                   `json:"ConnectionType"`
	Grade                   *string                   `json:"Grade"`
	MaterialDensity         *GaussianDrillingProperty `json:"MaterialDensity"`
	YoungModulus            *GaussianDrillingProperty `json:"YoungModulus"`
	LinearWeight            *GaussianDrillingProperty `json:"LinearWeight"`
	TensileStrength         *GaussianDrillingProperty `json:"TensileStrength"`
	BurstPressure           *GaussianDrillingProperty `json:"BurstPressure"`
	CollapsePressure        *GaussianDrillingProperty `json:"CollapsePressure"`
	YieldStress             *GaussianDrillingProperty `json:"YieldStress"`
	MakeUpTorqueRecommended *ScalarDrillingProperty   `json:"MakeUpTorqueRecommended"`
	SideConnectors          []SideConnector           `json:"SideConnectors"`
}

// SideConnector is a branch point on a surface section (kill line, choke line).
type SideConnector struct {
	Position              *GaussianDrillingProperty `json:"Position"`
	VerticalDepth         *GaussianDrillingProperty `json:"VerticalDepth"`
	FirstSideElement      *SideElement              `json:"FirstSideElement"`
	ElementConnectivities []ElementConnectivity     `json:"ElementConnectivities"`
}

type SideElement struct {
	Name             *string                   `json:"Name"`
	Type             SideElementType           `json:"Type"`
	Length           *GaussianDrillingProperty `json:"Length"`
	TopVerticalDepth *GaussianDrillingProperty `json:"TopVerticalDepth"`
	OD               *GaussianDrillingProperty `json:"OD"`
	ID               *GaussianDrillingProperty `json:"ID"`
}

// ElementConnectivity links two side elements. It carries no values of its
// own and has no realization.
type ElementConnectivity struct {
	UpstreamElement   *SideElement `json:"UpstreamElement"`
	DownstreamElement *SideElement `json:"DownstreamElement"`
}

type CasingSection struct {
	TopDepth               *GaussianDrillingProperty `json:"TopDepth"`
	Length                 *GaussianDrillingProperty `json:"Length"`
	TopCementDepth         *GaussianDrillingProperty `json:"TopCementDepth"`
	CasingSectionElements  []CasingSectionElement    `json:"CasingSectionElements"`
	CasingSectionSizeTable []BoreHoleSize            `json:"CasingSectionSizeTable"`
	// OpenHoleSection is drilled below this casing section and continues it
	// depth-wise.
	OpenHoleSection *OpenHoleSection `json:"OpenHoleSection"`
}

type CasingSectionElement struct {
	BodyOD                  *GaussianDrillingProperty `json:"BodyOD"`
	BodyID                  *GaussianDrillingProperty `json:"BodyID"`
	CollarOD                *GaussianDrillingProperty `json:"CollarOD"`
	JointLength             *GaussianDrillingProperty `json:"JointLength"`
	SectionLength           *GaussianDrillingProperty `json:"SectionLength"`
	MaxDLS                  *ScalarDrillingProperty   `json:"MaxDLS"`
	ConnectionType          *string                   `json:"ConnectionType"`
	Grade                   *string                   `json:"Grade"`
	MaterialDensity         *GaussianDrillingProperty `json:"MaterialDensity"`
	YoungModulus            *GaussianDrillingProperty `json:"YoungModulus"`
	LinearWeight            *GaussianDrillingProperty `json:"LinearWeight"`
	TensileStrength         *GaussianDrillingProperty `json:"TensileStrength"`
	TorsionalStrength       *GaussianDrillingProperty `json:"TorsionalStrength"`
	BurstPressure           *GaussianDrillingProperty `json:"BurstPressure"`
	CollapsePressure        *GaussianDrillingProperty `json:"CollapsePressure"`
	YieldStress             *GaussianDrillingProperty `json:"YieldStress"`
	MakeUpTorqueRecommended *ScalarDrillingProperty   `json:"MakeUpTorqueRecommended"`
}

type OpenHoleSection struct {
	HoleSizes []BoreHoleSize `json:"HoleSizes"`
}

type BoreHoleSize struct {
	HoleSize *GaussianDrillingProperty `json:"HoleSize"`
	Length   *GaussianDrillingProperty `json:"Length"`
}
