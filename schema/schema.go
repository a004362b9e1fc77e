package schema

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/wippyai/gpu-layout/descriptor"
	"github.com/wippyai/gpu-layout/errors"
)

type fileDecl struct {
	Types []typeDecl `toml:"type"`
}

type typeDecl struct {
	Name    string       `toml:"name"`
	Packing string       `toml:"packing"`
	Members []memberDecl `toml:"member"`
}

type memberDecl struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// Type is one named struct declared in a schema.
type Type struct {
	Struct  *descriptor.Struct
	Name    string
	Packing descriptor.Packing
}

// Schema holds the declared types in file order.
type Schema struct {
	index map[string]int
	types []Type
}

// Types returns the declared types in file order.
func (s *Schema) Types() []Type {
	out := make([]Type, len(s.types))
	copy(out, s.types)
	return out
}

// Lookup returns the struct declared under name.
func (s *Schema) Lookup(name string) (*descriptor.Struct, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseSchema, "type", name)
	}
	return s.types[i].Struct, nil
}

func (s *Schema) Len() int { return len(s.types) }

// Load reads and parses the schema file at path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindNotFound, err, "read "+path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	Logger().Debug("schema loaded", zap.String("path", path), zap.Int("types", s.Len()))
	return s, nil
}

// Parse decodes TOML schema data. Unknown keys are rejected.
func Parse(data []byte) (*Schema, error) {
	var decl fileDecl
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&decl); err != nil {
		return nil, decodeError(err)
	}

	s := &Schema{index: make(map[string]int, len(decl.Types))}
	for _, td := range decl.Types {
		t, err := s.build(td)
		if err != nil {
			return nil, err
		}
		s.index[t.Name] = len(s.types)
		s.types = append(s.types, t)
		Logger().Debug("type declared",
			zap.String("name", t.Name),
			zap.Stringer("packing", t.Packing),
			zap.Uint32("size", t.Struct.ByteSize()),
		)
	}
	return s, nil
}

func (s *Schema) build(td typeDecl) (Type, error) {
	if td.Name == "" {
		return Type{}, errors.InvalidInput(errors.PhaseSchema, "type without name")
	}
	if _, dup := s.index[td.Name]; dup {
		return Type{}, errors.New(errors.PhaseSchema, errors.KindInvalidInput).
			Path(td.Name).
			Detail("type declared twice").
			Build()
	}
	packing, err := ParsePacking(td.Packing)
	if err != nil {
		return Type{}, errors.WithPath(err, td.Name)
	}

	fields := make([]descriptor.Field, 0, len(td.Members))
	for _, md := range td.Members {
		d, err := ParseType(md.Type, packing, s.resolve)
		if err != nil {
			return Type{}, errors.WithPath(err, td.Name, md.Name)
		}
		fields = append(fields, descriptor.Field{Name: md.Name, Type: d})
	}

	st, err := descriptor.NewStruct(packing, fields...)
	if err != nil {
		return Type{}, errors.WithPath(err, td.Name)
	}
	return Type{Name: td.Name, Packing: packing, Struct: st}, nil
}

func (s *Schema) resolve(name string) (descriptor.Descriptor, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.types[i].Struct, true
}

// ParsePacking accepts "dense", "uniform" or "" (dense).
func ParsePacking(s string) (descriptor.Packing, error) {
	switch s {
	case "", "dense":
		return descriptor.Dense, nil
	case "uniform":
		return descriptor.Uniform, nil
	default:
		return 0, errors.InvalidInput(errors.PhaseSchema, fmt.Sprintf("unknown packing %q", s))
	}
}

func decodeError(err error) error {
	var de *toml.DecodeError
	if stderrors.As(err, &de) {
		row, col := de.Position()
		return errors.New(errors.PhaseSchema, errors.KindInvalidData).
			Cause(err).
			Detail("line %d column %d", row, col).
			Build()
	}
	var se *toml.StrictMissingError
	if stderrors.As(err, &se) {
		return errors.New(errors.PhaseSchema, errors.KindInvalidData).
			Cause(err).
			Detail("unknown key").
			Build()
	}
	return errors.ParseFailed(errors.PhaseSchema, "schema", err)
}
