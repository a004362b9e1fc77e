package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

// Resolver maps a type name to a previously declared descriptor.
type Resolver func(name string) (descriptor.Descriptor, bool)

// ParseType parses a type expression such as "array<vec3<f32>, 4>".
// Vectors and matrices are laid out with packing. Names that are not
// built-in are passed to resolve, which may be nil.
func ParseType(expr string, packing descriptor.Packing, resolve Resolver) (descriptor.Descriptor, error) {
	p := &exprParser{src: expr, packing: packing, resolve: resolve}
	d, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return d, nil
}

var scalarNames = map[string]*descriptor.Scalar{
	"bool": descriptor.Bool,
	"i32":  descriptor.I32,
	"u32":  descriptor.U32,
	"f16":  descriptor.F16,
	"f32":  descriptor.F32,
	"f64":  descriptor.F64,
}

// WGSL shorthand suffixes, as in vec3f or mat4x4h.
var suffixScalars = map[byte]*descriptor.Scalar{
	'f': descriptor.F32,
	'h': descriptor.F16,
	'i': descriptor.I32,
	'u': descriptor.U32,
}

type exprParser struct {
	resolve Resolver
	src     string
	pos     int
	packing descriptor.Packing
}

func (p *exprParser) parseType() (descriptor.Descriptor, error) {
	name := p.ident()
	if name == "" {
		return nil, p.errorf("expected type name")
	}

	if s, ok := scalarNames[name]; ok {
		return s, nil
	}
	if name == "array" {
		return p.parseArray()
	}
	if n, scalar, ok := vecName(name); ok {
		if scalar == nil {
			var err error
			if scalar, err = p.parseScalarArg(); err != nil {
				return nil, err
			}
		}
		v, err := descriptor.NewVec(scalar, n, p.packing)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	if n, scalar, ok := matName(name); ok {
		if scalar == nil {
			var err error
			if scalar, err = p.parseScalarArg(); err != nil {
				return nil, err
			}
		}
		m, err := descriptor.NewMat(scalar, n, p.packing)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	if p.resolve != nil {
		if d, ok := p.resolve(name); ok {
			return d, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseSchema, "type", name)
}

func (p *exprParser) parseArray() (descriptor.Descriptor, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	item, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return nil, p.errorf("expected array length")
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	a, err := descriptor.NewArray(item, n)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (p *exprParser) parseScalarArg() (*descriptor.Scalar, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	name := p.ident()
	s, ok := scalarNames[name]
	if !ok {
		return nil, p.errorf("expected scalar type, got %q", name)
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return s, nil
}

// vecName recognizes vecN and vecN<suffix>. scalar is nil when the
// component type follows in angle brackets.
func vecName(name string) (n int, scalar *descriptor.Scalar, ok bool) {
	rest, found := strings.CutPrefix(name, "vec")
	if !found || len(rest) == 0 || rest[0] < '2' || rest[0] > '4' {
		return 0, nil, false
	}
	n = int(rest[0] - '0')
	switch len(rest) {
	case 1:
		return n, nil, true
	case 2:
		s, ok := suffixScalars[rest[1]]
		return n, s, ok
	}
	return 0, nil, false
}

// matName recognizes square matNxN with an optional shorthand suffix.
func matName(name string) (n int, scalar *descriptor.Scalar, ok bool) {
	rest, found := strings.CutPrefix(name, "mat")
	if !found || len(rest) < 3 || rest[1] != 'x' || rest[0] != rest[2] || rest[0] < '2' || rest[0] > '4' {
		return 0, nil, false
	}
	n = int(rest[0] - '0')
	switch len(rest) {
	case 3:
		return n, nil, true
	case 4:
		s, ok := suffixScalars[rest[3]]
		return n, s, ok
	}
	return 0, nil, false
}

func (p *exprParser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || p.pos > start && c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *exprParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) errorf(format string, args ...any) error {
	return errors.New(errors.PhaseSchema, errors.KindInvalidData).
		Value(p.src).
		Detail("%s at column %d in %q", fmt.Sprintf(format, args...), p.pos+1, p.src).
		Build()
}
