package plan

import (
	"errors"
	"fmt"
)

// ErrUnknownShape is returned when a shape name is not in a catalog.
var ErrUnknownShape = errors.New("unknown shape")

// Shape is a named, ordered set of wall segments. Size is the declared
// segment count carried alongside the slice; Validate rejects shapes where
// the two disagree.
type Shape struct {
	Name     string    `json:"name"`
	Segments []Segment `json:"segments"`
	Size     int       `json:"size"`
}

// NewShape creates a shape whose declared size matches its segments.
func NewShape(name string, segs ...Segment) Shape {
	return Shape{Name: name, Segments: segs, Size: len(segs)}
}

// Enclosed reports whether the shape's segments form closed loops, matching
// endpoints to within tol (tol <= 0 means exact equality).
func (s Shape) Enclosed(tol float64) bool {
	return IsEnclosedSpaceTol(s.Segments, tol)
}

// Catalog is an ordered, name-indexed collection of shapes. Shapes are
// stored by value; callers never see the catalog's own slices.
type Catalog struct {
	shapes    []Shape
	nameIndex map[string]int
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{nameIndex: make(map[string]int)}
}

// Add appends a shape. Names must be unique and non-empty.
func (c *Catalog) Add(s Shape) error {
	if s.Name == "" {
		return errors.New("plan: shape name must not be empty")
	}
	if _, exists := c.nameIndex[s.Name]; exists {
		return fmt.Errorf("plan: shape %q already defined", s.Name)
	}
	s.Segments = append([]Segment(nil), s.Segments...)
	c.nameIndex[s.Name] = len(c.shapes)
	c.shapes = append(c.shapes, s)
	return nil
}

// Lookup returns the shape with the given name.
func (c *Catalog) Lookup(name string) (Shape, bool) {
	i, ok := c.nameIndex[name]
	if !ok {
		return Shape{}, false
	}
	s := c.shapes[i]
	s.Segments = append([]Segment(nil), s.Segments...)
	return s, true
}

// MustLookup returns the shape with the given name, or panics.
func (c *Catalog) MustLookup(name string) Shape {
	s, ok := c.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("plan: no shape named %q", name))
	}
	return s
}

// Names returns shape names in insertion order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.shapes))
	for i, s := range c.shapes {
		names[i] = s.Name
	}
	return names
}

// Shapes returns copies of all shapes in insertion order.
func (c *Catalog) Shapes() []Shape {
	out := make([]Shape, 0, len(c.shapes))
	for _, name := range c.Names() {
		out = append(out, c.MustLookup(name))
	}
	return out
}

// Len returns the number of shapes.
func (c *Catalog) Len() int {
	return len(c.shapes)
}

// Merge adds every shape from other. On a name clash nothing is added.
func (c *Catalog) Merge(other *Catalog) error {
	for _, s := range other.shapes {
		if _, exists := c.nameIndex[s.Name]; exists {
			return fmt.Errorf("plan: shape %q already defined", s.Name)
		}
	}
	for _, s := range other.shapes {
		if err := c.Add(s); err != nil {
			return err
		}
	}
	return nil
}
