// SPDX-License-Identifier: MIT

package field

import (
	"math"
	"strings"

	"github.com/katalvlaran/lvlpiv/grid"
)

// Scalar property names accepted by Vec2Scal.
const (
	PropVorticity     = "vorticity"
	PropKineticEnergy = "ken"
	PropTKE           = "tke"
	PropDivergence    = "divergence"
	PropStrain        = "strain"
	PropShear         = "shear"
	PropAcceleration  = "acceleration"
	PropMagnitude     = "magnitude"
)

// aliases maps accepted spellings onto canonical property names.
var aliases = map[string]string{
	"vorticity":      PropVorticity,
	"curl":           PropVorticity,
	"ken":            PropKineticEnergy,
	"kinetic_energy": PropKineticEnergy,
	"tke":            PropTKE,
	"divergence":     PropDivergence,
	"strain":         PropStrain,
	"shear":          PropShear,
	"acceleration":   PropAcceleration,
	"magnitude":      PropMagnitude,
}

// CanonicalProperty resolves an alias ("curl", "kinetic_energy") to the name
// stored in Dataset.Scalar. The lookup is case-insensitive.
func CanonicalProperty(name string) (string, error) {
	p, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", ErrUnknownProperty
	}
	return p, nil
}

// Vec2Scal derives a scalar field from the velocity and stores it in W of
// every frame.
// MAIN DESCRIPTION:
//   - vorticity (curl):        ω = ∂v/∂x − ∂u/∂y
//   - ken (kinetic_energy):    ½(u² + v²)
//   - tke:                     ½(u'² + v'²), u' = u − ⟨u⟩ over frames
//   - divergence:              ∂u/∂x + ∂v/∂y
//   - strain:                  (∂u/∂x)² + (∂v/∂y)² + ½(∂u/∂y + ∂v/∂x)²
//   - shear:                   ∂u/∂y + ∂v/∂x
//   - acceleration:            |(u·∇)u|, the convective acceleration
//   - magnitude:               |(u, v)|
//
// Derivatives use grid.Gradient on the dataset coordinates, so spacing and
// axis direction are honoured. NaN vectors propagate to their neighbours'
// derivatives.
//
// Errors: ErrEmptyDataset, ErrUnknownProperty, wrapped grid errors.
//
// Complexity: O(T·r·c), frames in parallel.
func (ds *Dataset) Vec2Scal(property string, opts ...Option) (*Dataset, error) {
	const op = "Vec2Scal"
	if ds == nil || ds.Len() == 0 {
		return nil, fieldErrorf(op, ErrEmptyDataset)
	}
	prop, err := CanonicalProperty(property)
	if err != nil {
		return nil, fieldErrorf(op, err)
	}
	o := gatherOptions(opts...)

	src := ds
	if prop == PropTKE {
		if src, err = ds.Fluctuations(opts...); err != nil {
			return nil, fieldErrorf(op, err)
		}
	}

	frames, err := mapFrames(ds.Frames, o, op, func(k int, f Frame) (Frame, error) {
		w, err := scalarOf(prop, src.Frames[k], ds.X, ds.Y)
		if err != nil {
			return Frame{}, err
		}
		out := f.Clone()
		out.W = w
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	res := ds.withFrames(frames)
	res.Scalar = prop
	o.debug("field: scalar derived", "property", prop, "frames", len(frames))

	return res, nil
}

// scalarOf evaluates one property on one frame.
func scalarOf(prop string, f Frame, x, y []float64) (*grid.Dense, error) {
	switch prop {
	case PropKineticEnergy, PropTKE:
		return grid.Zip(f.U, f.V, func(u, v float64) float64 { return 0.5 * (u*u + v*v) })
	case PropMagnitude:
		return grid.Hypot(f.U, f.V)
	}

	ux, uy, err := grid.Gradient(f.U, x, y)
	if err != nil {
		return nil, err
	}
	vx, vy, err := grid.Gradient(f.V, x, y)
	if err != nil {
		return nil, err
	}

	switch prop {
	case PropVorticity:
		return grid.Sub(vx, uy)
	case PropDivergence:
		return grid.Add(ux, vy)
	case PropShear:
		return grid.Add(uy, vx)
	case PropStrain:
		res := ux.Clone()
		u, v := ux.Raw(), vy.Raw()
		du, dv := uy.Raw(), vx.Raw()
		out := res.Raw()
		var s float64
		for idx := range out {
			s = du[idx] + dv[idx]
			out[idx] = u[idx]*u[idx] + v[idx]*v[idx] + 0.5*s*s
		}
		return res, nil
	case PropAcceleration:
		res := ux.Clone()
		u, v := f.U.Raw(), f.V.Raw()
		dux, duy, dvx, dvy := ux.Raw(), uy.Raw(), vx.Raw(), vy.Raw()
		out := res.Raw()
		for idx := range out {
			out[idx] = math.Hypot(
				u[idx]*dux[idx]+v[idx]*duy[idx],
				u[idx]*dvx[idx]+v[idx]*dvy[idx],
			)
		}
		return res, nil
	}

	return nil, ErrUnknownProperty
}
