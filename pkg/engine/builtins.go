package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/floorplan/pkg/plan"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms shape source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: open-room -> open_room
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpSegment wraps a plan.Segment returned from `wall`.
type sexpSegment struct {
	seg plan.Segment
}

func (s *sexpSegment) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(wall %g %g %g %g)", s.seg.X1, s.seg.Y1, s.seg.X2, s.seg.Y2)
}
func (s *sexpSegment) Type() *zygo.RegisteredType { return nil }

// sexpShapeRef names a shape already added to the catalog.
type sexpShapeRef struct {
	name string
}

func (r *sexpShapeRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %q)", r.name)
}
func (r *sexpShapeRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toSegments flattens a wall, a shape reference, or a list of either into
// segments. Shape references contribute a copy of that shape's walls.
func toSegments(s zygo.Sexp, cat *plan.Catalog) ([]plan.Segment, error) {
	switch v := s.(type) {
	case *sexpSegment:
		return []plan.Segment{v.seg}, nil
	case *sexpShapeRef:
		shape, ok := cat.Lookup(v.name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", plan.ErrUnknownShape, v.name)
		}
		return shape.Segments, nil
	case *zygo.SexpPair, *zygo.SexpArray:
		items, err := sexpListToSlice(v)
		if err != nil {
			return nil, err
		}
		var out []plan.Segment
		for _, item := range items {
			segs, err := toSegments(item, cat)
			if err != nil {
				return nil, err
			}
			out = append(out, segs...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected wall or shape, got %T (%s)", s, s.SexpString(nil))
}

// toCoords reads an even-length run of numbers as x/y pairs.
func toCoords(args []zygo.Sexp) ([]plan.Point, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("expected x y pairs, got %d numbers", len(args))
	}
	pts := make([]plan.Point, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		x, err := toFloat64(args[i])
		if err != nil {
			return nil, fmt.Errorf("point %d: x: %w", i/2, err)
		}
		y, err := toFloat64(args[i+1])
		if err != nil {
			return nil, fmt.Errorf("point %d: y: %w", i/2, err)
		}
		pts = append(pts, plan.Point{X: x, Y: y})
	}
	return pts, nil
}

// polyline joins consecutive points with walls, closing the loop when
// closed is set.
func polyline(pts []plan.Point, closed bool) []plan.Segment {
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	segs := make([]plan.Segment, 0, n)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		segs = append(segs, plan.Seg(a.X, a.Y, b.X, b.Y))
	}
	return segs
}

// addShape stores a shape with an optional declared size.
func addShape(cat *plan.Catalog, fn, name string, segs []plan.Segment, pa kwArgs) (zygo.Sexp, error) {
	shape := plan.NewShape(name, segs...)
	if v, ok := pa.kw["size"]; ok {
		n, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: size: %w", fn, err)
		}
		shape.Size = int(n)
	}
	if err := cat.Add(shape); err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
	}
	return &sexpShapeRef{name: name}, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the shape builtins into a zygomys environment.
// The builtins add shapes to cat during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, cat *plan.Catalog) {

	// -----------------------------------------------------------------------
	// (wall x1 y1 x2 y2)
	// -----------------------------------------------------------------------
	env.AddFunction("wall", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("wall requires exactly 4 arguments, got %d", len(args))
		}
		var c [4]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("wall: argument %d: %w", i+1, err)
			}
			c[i] = f
		}
		return &sexpSegment{seg: plan.Seg(c[0], c[1], c[2], c[3])}, nil
	})

	// -----------------------------------------------------------------------
	// (defshape "name" :size 4 (wall ...) (wall ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("defshape requires a name argument")
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}

		pa := parseArgs(args[1:])
		var segs []plan.Segment
		for i, body := range pa.positional {
			s, err := toSegments(body, cat)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("defshape %q: body %d: %w", shapeName, i+1, err)
			}
			segs = append(segs, s...)
		}
		return addShape(cat, "defshape", shapeName, segs, pa)
	})

	// -----------------------------------------------------------------------
	// (room "name" x1 y1 x2 y2 x3 y3 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("room", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return polyShape(cat, "room", args, true)
	})

	// -----------------------------------------------------------------------
	// (open-room "name" x1 y1 x2 y2 ...)
	//
	// Registered as "open_room"; the preprocessor rewrites the hyphen.
	// -----------------------------------------------------------------------
	env.AddFunction("open_room", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return polyShape(cat, "open-room", args, false)
	})

	// -----------------------------------------------------------------------
	// (shape "name")
	// -----------------------------------------------------------------------
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("shape requires a name argument")
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: name: %w", err)
		}
		if _, ok := cat.Lookup(shapeName); !ok {
			return zygo.SexpNull, fmt.Errorf("shape: %w: %q", plan.ErrUnknownShape, shapeName)
		}
		return &sexpShapeRef{name: shapeName}, nil
	})
}

// polyShape implements room and open-room.
func polyShape(cat *plan.Catalog, fn string, args []zygo.Sexp, closed bool) (zygo.Sexp, error) {
	if len(args) < 1 {
		return zygo.SexpNull, fmt.Errorf("%s requires a name argument", fn)
	}
	shapeName, err := toString(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: name: %w", fn, err)
	}

	pa := parseArgs(args[1:])
	pts, err := toCoords(pa.positional)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s %q: %w", fn, shapeName, err)
	}
	need := 2
	if closed {
		need = plan.MinEnclosureSegments
	}
	if len(pts) < need {
		return zygo.SexpNull, fmt.Errorf("%s %q: need at least %d corners, got %d", fn, shapeName, need, len(pts))
	}
	return addShape(cat, fn, shapeName, polyline(pts, closed), pa)
}
