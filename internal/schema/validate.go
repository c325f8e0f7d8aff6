package schema

// Check runs the full set of cross-field invariants: domain presence,
// attribute/dimension name non-collision, reserved-name rules, capacity
// for sparse kinds, and compressor validity. A schema that fails Check
// must not be handed to Create.
func (s *ArraySchema) Check() error {
	var verr *ValidationError
	if s.h == nil {
		verr = validationErrf("domain", nil, "no domain set")
	} else {
		s.h.mu.RLock()
		verr = checkData(&s.h.data)
		s.h.mu.RUnlock()
	}
	if verr != nil {
		return s.ctx.report("check", verr)
	}
	return nil
}

func checkData(d *schemaData) *ValidationError {
	if !d.kind.valid() {
		return validationErrf("kind", nil, "unknown array kind %d", uint8(d.kind))
	}
	if !d.tileOrder.valid() || d.tileOrder == Hilbert {
		return validationErrf("tile_order", nil, "%s is not a valid tile order", d.tileOrder)
	}
	if !d.cellOrder.valid() {
		return validationErrf("cell_order", nil, "unknown layout %d", uint8(d.cellOrder))
	}
	if d.kind == Sparse && d.capacity == 0 {
		return validationErrf("capacity", nil, "sparse arrays need a tile capacity > 0")
	}

	if d.domain == nil {
		return validationErrf("domain", nil, "no domain set")
	}
	if err := d.domain.Validate(); err != nil {
		return validationErrf("domain", err, "invalid domain")
	}

	if err := d.coordComp.Validate(); err != nil {
		return validationErrf("coord_compressor", err, "invalid coordinate compressor")
	}
	if err := d.offsetComp.Validate(); err != nil {
		return validationErrf("offset_compressor", err, "invalid offset compressor")
	}

	kvShape := matchesKVShape(d)
	if d.kv && !kvShape {
		return validationErrf("kv", nil, "schema is marked key-value but does not have the key-value shape")
	}

	dimNames := make(map[string]struct{}, d.domain.NDim())
	for _, dim := range d.domain.Dimensions() {
		if isReservedName(dim.Name) && !kvShape {
			return validationErrf("domain", nil, "dimension name %q uses the reserved key-value prefix", dim.Name)
		}
		dimNames[dim.Name] = struct{}{}
	}

	for _, a := range d.attrs {
		if err := a.Validate(); err != nil {
			return validationErrf("attribute", err, "invalid attribute %q", a.Name)
		}
		if isReservedName(a.Name) && !kvShape {
			return validationErrf("attribute", nil, "attribute name %q uses the reserved key-value prefix", a.Name)
		}
		if _, clash := dimNames[a.Name]; clash {
			return validationErrf("attribute", nil, "attribute %q collides with a dimension name", a.Name)
		}
	}
	return nil
}
