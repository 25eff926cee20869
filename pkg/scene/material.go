package scene

import "github.com/chazu/floorplan/pkg/config"

// Material describes how the frontend shades a mesh. Materials are built
// once per process and shared by pointer; nothing mutates them afterwards.
type Material struct {
	Name    string `json:"name"`
	Color   string `json:"color"`
	Texture string `json:"texture,omitempty"`
	// Repeat enables texture wrapping, required for remapped floor UVs.
	Repeat bool `json:"repeat"`
}

// Materials holds the two process-wide materials.
type Materials struct {
	Wall  *Material
	Floor *Material
}

// NewMaterials builds the shared materials from cfg.
func NewMaterials(cfg *config.Config) *Materials {
	return &Materials{
		Wall: &Material{
			Name:  "wall",
			Color: cfg.Walls.Color,
		},
		Floor: &Material{
			Name:    "floor",
			Color:   cfg.Floor.Color,
			Texture: cfg.Floor.Texture,
			Repeat:  true,
		},
	}
}
