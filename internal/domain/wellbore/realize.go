package wellbore

// Every Realize method is safe on a nil receiver and returns nil in that case.

// realizeAll maps a child list in order. A nil list stays nil and an empty
// list stays empty, so clients can tell "absent" from "none".
func realizeAll[T any, R any](in []T, realize func(*T) R) []R {
	if in == nil {
		return nil
	}
	out := make([]R, len(in))
	for i := range in {
		out[i] = realize(&in[i])
	}
	return out
}

func (w *WellBoreArchitecture) Realize() *WellBoreArchitectureRealization {
	if w == nil {
		return nil
	}
	return &WellBoreArchitectureRealization{
		WellHead:               w.WellHead.Realize(),
		FluidsAboveGroundLevel: realizeAll(w.FluidsAboveGroundLevel, (*WellBoreArchitectureFluid).Realize),
		SurfaceSections:        realizeAll(w.SurfaceSections, (*SurfaceSection).Realize),
		CasingSections:         realizeAll(w.CasingSections, (*CasingSection).Realize),
	}
}

func (h *WellHead) Realize() *WellHeadRealization {
	if h == nil {
		return nil
	}
	return &WellHeadRealization{
		MaxOD:             h.MaxOD.Realize(),
		MinOD:             h.MinOD.Realize(),
		Depth:             h.Depth.Realize(),
		CasingHangerDepth: h.CasingHangerDepth.Realize(),
		TubingHangerDepth: h.TubingHangerDepth.Realize(),
	}
}

func (f *WellBoreArchitectureFluid) Realize() *WellBoreArchitectureFluidRealization {
	if f == nil {
		return nil
	}
	return &WellBoreArchitectureFluidRealization{
		Fluid: f.Fluid,
		Depth: f.Depth.Realize(),
	}
}

func (s *SurfaceSection) Realize() *SurfaceSectionRealization {
	if s == nil {
		return nil
	}
	return &SurfaceSectionRealization{
		Type:                    s.Type,
		SectionLength:           s.SectionLength.Realize(),
		BodyOD:                  s.BodyOD.Realize(),
		BodyID:                  s.BodyID.Realize(),
		ConnectionType:          copyString(s.ConnectionType),
		Grade:                   copyString(s.Grade),
		MaterialDensity:         s.MaterialDensity.Realize(),
		YoungModulus:            s.YoungModulus.Realize(),
		LinearWeight:            s.LinearWeight.Realize(),
		TensileStrength:         s.TensileStrength.Realize(),
		BurstPressure:           s.BurstPressure.Realize(),
		CollapsePressure:        s.CollapsePressure.Realize(),
		YieldStress:             s.YieldStress.Realize(),
		MakeUpTorqueRecommended: s.MakeUpTorqueRecommended.Realize(),
		SideConnectors:          realizeAll(s.SideConnectors, (*SideConnector).Realize),
	}
}

// Realize projects the connector and its first element. Element
// connectivities are relational and are not projected.
func (c *SideConnector) Realize() *SideConnectorRealization {
	if c == nil {
		return nil
	}
	return &SideConnectorRealization{
		Position:         c.Position.Realize(),
		VerticalDepth:    c.VerticalDepth.Realize(),
		FirstSideElement: c.FirstSideElement.Realize(),
	}
}

func (e *SideElement) Realize() *SideElementRealization {
	if e == nil {
		return nil
	}
	return &SideElementRealization{
		Name:             copyString(e.Name),
		Type:             e.Type,
		Length:           e.Length.Realize(),
		TopVerticalDepth: e.TopVerticalDepth.Realize(),
		OD:               e.OD.Realize(),
		ID:               e.ID.Realize(),
	}
}

func (c *CasingSection) Realize() *CasingSectionRealization {
	if c == nil {
		return nil
	}
	return &CasingSectionRealization{
		TopDepth:               c.TopDepth.Realize(),
		Length:                 c.Length.Realize(),
		TopCementDepth:         c.TopCementDepth.Realize(),
		CasingSectionElements:  realizeAll(c.CasingSectionElements, (*CasingSectionElement).Realize),
		CasingSectionSizeTable: realizeAll(c.CasingSectionSizeTable, (*BoreHoleSize).Realize),
		OpenHoleSection:        c.OpenHoleSection.Realize(),
	}
}

func (e *CasingSectionElement) Realize() *CasingSectionElementRealization {
	if e == nil {
		return nil
	}
	return &CasingSectionElementRealization{
		BodyOD:                  e.BodyOD.Realize(),
		BodyID:                  e.BodyID.Realize(),
		CollarOD:                e.CollarOD.Realize(),
		JointLength:             e.JointLength.Realize(),
		SectionLength:           e.SectionLength.Realize(),
		MaxDLS:                  e.MaxDLS.Realize(),
		ConnectionType:          copyString(e.ConnectionType),
		Grade:                   copyString(e.Grade),
		MaterialDensity:         e.MaterialDensity.Realize(),
		YoungModulus:            e.YoungModulus.Realize(),
		LinearWeight:            e.LinearWeight.Realize(),
		TensileStrength:         e.TensileStrength.Realize(),
		TorsionalStrength:       e.TorsionalStrength.Realize(),
		BurstPressure:           e.BurstPressure.Realize(),
		CollapsePressure:        e.CollapsePressure.Realize(),
		YieldStress:             e.YieldStress.Realize(),
		MakeUpTorqueRecommended: e.MakeUpTorqueRecommended.Realize(),
	}
}

func (o *OpenHoleSection) Realize() *OpenHoleSectionRealization {
	if o == nil {
		return nil
	}
	return &OpenHoleSectionRealization{
		HoleSizes: realizeAll(o.HoleSizes, (*BoreHoleSize).Realize),
	}
}

func (b *BoreHoleSize) Realize() *BoreHoleSizeRealization {
	if b == nil {
		return nil
	}
	return &BoreHoleSizeRealization{
		HoleSize: b.HoleSize.Realize(),
		Length:   b.Length.Realize(),
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
