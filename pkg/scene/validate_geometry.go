package scene

import "fmt"

// ---------------------------------------------------------------------------
// Tier 2 — Geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

// validateGeometry runs all Tier 2 geometric checks.
// Returns errors (blocking) and warnings (advisory) separately.
func validateGeometry(s *Scene) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validateDimensions(s)...)
	errs = append(errs, validateStep(s)...)

	return errs, warnings
}

// validateDimensions checks that every primitive has positive dimensions.
func validateDimensions(s *Scene) []ValidationError {
	var errs []ValidationError

	for _, node := range s.Nodes {
		switch d := node.Data.(type) {
		case BoxData:
			if d.Size.X <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("box dimension X is %.4f, must be positive", d.Size.X),
					Severity: SeverityError,
				})
			}
			if d.Size.Y <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("box dimension Y is %.4f, must be positive", d.Size.Y),
					Severity: SeverityError,
				})
			}
			if d.Size.Z <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("box dimension Z is %.4f, must be positive", d.Size.Z),
					Severity: SeverityError,
				})
			}
		case SphereData:
			if d.Radius <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("sphere radius is %.4f, must be positive", d.Radius),
					Severity: SeverityError,
				})
			}
		case CylinderData:
			if d.Height <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("cylinder height is %.4f, must be positive", d.Height),
					Severity: SeverityError,
				})
			}
			if d.Radius <= 0 {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("cylinder radius is %.4f, must be positive", d.Radius),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateStep checks that the scene's default sampling step is positive.
func validateStep(s *Scene) []ValidationError {
	if s.Defaults.Step > 0 {
		return nil
	}
	return []ValidationError{{
		Message:  fmt.Sprintf("default step is %.4f, must be positive", s.Defaults.Step),
		Severity: SeverityError,
	}}
}

// ---------------------------------------------------------------------------
// Tier 3 — Resolution warnings
// ---------------------------------------------------------------------------

// minFeature returns the smallest characteristic dimension of a primitive
// payload, or 0 for non-primitive payloads.
func minFeature(data NodeData) float64 {
	switch d := data.(type) {
	case BoxData:
		m := d.Size.X
		if d.Size.Y < m {
			m = d.Size.Y
		}
		if d.Size.Z < m {
			m = d.Size.Z
		}
		return m
	case SphereData:
		return 2 * d.Radius
	case CylinderData:
		if d.Height < 2*d.Radius {
			return d.Height
		}
		return 2 * d.Radius
	default:
		return 0
	}
}

// validateResolution warns when a primitive is thin relative to the sampling
// step. Features under two steps across can straddle a single cell row and
// vanish from the extracted contours.
func validateResolution(s *Scene) []ValidationWarning {
	var warnings []ValidationWarning

	step := s.Defaults.Step
	if step <= 0 {
		return nil // invalid step reported by Tier 2
	}

	for _, node := range s.Nodes {
		if node.Kind != NodePrimitive {
			continue
		}
		m := minFeature(node.Data)
		if m <= 0 {
			continue // non-positive dimensions reported by Tier 2
		}
		if m < 2*step {
			warnings = append(warnings, ValidationWarning{
				NodeID: node.ID,
				Message: fmt.Sprintf(
					"smallest dimension %.2fmm is under twice the sampling step %.2fmm; slices may miss it",
					m, step,
				),
			})
		}
	}

	return warnings
}
