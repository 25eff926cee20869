package plan

// Preset shape names, in the order the selection UI lists them.
const (
	PresetSquare   = "square"
	PresetLShape   = "lshape"
	PresetTriangle = "triangle"
	PresetCorridor = "corridor"
)

// DefaultPreset is the shape shown at startup.
const DefaultPreset = PresetSquare

// Presets returns a fresh catalog of the four built-in shapes. Enclosed
// presets list their walls as a consistently wound chain.
func Presets() *Catalog {
	c := NewCatalog()
	for _, s := range []Shape{
		NewShape(PresetSquare,
			Seg(0, 0, 4, 0),
			Seg(4, 0, 4, 4),
			Seg(4, 4, 0, 4),
			Seg(0, 4, 0, 0),
		),
		NewShape(PresetLShape,
			Seg(0, 0, 6, 0),
			Seg(6, 0, 6, 3),
			Seg(6, 3, 3, 3),
			Seg(3, 3, 3, 6),
			Seg(3, 6, 0, 6),
			Seg(0, 6, 0, 0),
		),
		NewShape(PresetTriangle,
			Seg(0, 0, 6, 0),
			Seg(6, 0, 3, 5),
			Seg(3, 5, 0, 0),
		),
		NewShape(PresetCorridor,
			Seg(0, 3, 0, 0),
			Seg(0, 0, 8, 0),
			Seg(8, 0, 8, 3),
		),
	} {
		if err := c.Add(s); err != nil {
			panic(err)
		}
	}
	return c
}
