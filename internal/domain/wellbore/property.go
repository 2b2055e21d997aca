package wellbore

// DiracDistribution carries a single known value. MinValue/MaxValue are
// optional bounds reported alongside it.
type DiracDistribution struct {
	Value    *float64 `json:"Value"`
	MinValue *float64 `json:"MinValue"`
	MaxValue *float64 `json:"MaxValue"`
}

func (d *DiracDistribution) Realize() *float64 {
	if d == nil {
		return nil
	}
	return copyFloat(d.Value)
}

// GaussianDistribution is a normal distribution described by its first two moments.
type GaussianDistribution struct {
	Mean              *float64 `json:"Mean"`
	StandardDeviation *float64 `json:"StandardDeviation"`
}

// Realize returns the mean. Sampling is intentionally not supported.
func (g *GaussianDistribution) Realize() *float64 {
	if g == nil {
		return nil
	}
	return copyFloat(g.Mean)
}

// ScalarDrillingProperty is a quantity known as a fixed (Dirac) value.
type ScalarDrillingProperty struct {
	DiracDistributionValue *DiracDistribution `json:"DiracDistributionValue"`
}

// Value returns the underlying distribution.
func (p *ScalarDrillingProperty) Value() *DiracDistribution {
	if p == nil {
		return nil
	}
	return p.DiracDistributionValue
}

func (p *ScalarDrillingProperty) Realize() *float64 {
	return p.Value().Realize()
}

// GaussianDrillingProperty is a quantity known through a Gaussian distribution.
type GaussianDrillingProperty struct {
	GaussianValue *GaussianDistribution `json:"GaussianValue"`
}

// Value returns the underlying distribution. It is the same distribution as
// GaussianValue; both accessors realize to the mean.
func (p *GaussianDrillingProperty) Value() *GaussianDistribution {
	if p == nil {
		return nil
	}
	return p.GaussianValue
}

func (p *GaussianDrillingProperty) Realize() *float64 {
	return p.Value().Realize()
}

// Scalar builds a ScalarDrillingProperty with MinValue == MaxValue == v.
func Scalar(v float64) *ScalarDrillingProperty {
	return &ScalarDrillingProperty{
		DiracDistributionValue: &DiracDistribution{
			Value:    Float(v),
			MinValue: Float(v),
			MaxValue: Float(v),
		},
	}
}

func Gaussian(mean float64) *GaussianDrillingProperty {
	return &GaussianDrillingProperty{GaussianValue: &GaussianDistribution{Mean: Float(mean)}}
}

func GaussianWithStdDev(mean, stdDev float64) *GaussianDrillingProperty {
	return &GaussianDrillingProperty{
		GaussianValue: &GaussianDistribution{Mean: Float(mean), StandardDeviation: Float(stdDev)},
	}
}

func Float(v float64) *float64 { return &v }

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
