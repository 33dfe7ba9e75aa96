package geometry

// Grid builds a ground grid of size x size units centred on the origin in
// the XZ plane. Lines are thin flat strips facing +Y; every sectionEvery-th
// line goes to the sections mesh, the rest to cells.
func Grid(size float32, divisions, sectionEvery int, lineWidth float32) (cells, sections *Mesh) {
	cells, sections = &Mesh{DoubleSided: true}, &Mesh{DoubleSided: true}
	if divisions < 1 {
		return cells, sections
	}
	half := size / 2
	step := size / float32(divisions)
	hw := lineWidth / 2
	up := v(0, 1, 0)

	for i := 0; i <= divisions; i++ {
		target := cells
		if sectionEvery > 0 && i%sectionEvery == 0 {
			target = sections
		}
		p := -half + float32(i)*step
		// Line along Z at x = p.
		target.addQuad(v(p-hw, 0, -half), v(p+hw, 0, -half), v(p+hw, 0, half), v(p-hw, 0, half), up)
		// Line along X at z = p.
		target.addQuad(v(-half, 0, p-hw), v(half, 0, p-hw), v(half, 0, p+hw), v(-half, 0, p+hw), up)
	}
	cells.UpdateBounds()
	sections.UpdateBounds()
	return cells, sections
}
