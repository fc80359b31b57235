// Package pb encodes engine outputs in protobuf wire format for binary clients.
//
// Messages are written field by field with protowire, so no generated code is
// needed on either side:
//
//	Frame { 1: layer varint, 2: cells packed varint (col,row pairs), 3: exhausted bool }
//	Walls { 1: width varint, 2: height varint, 3: vertical bytes, 4: horizontal bytes }
//	Path  { 1: cells packed varint (col,row pairs), 2: distance varint }
//
// Wall bytes hold one byte per wall, 1 when the wall is present.
package pb

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/lightning-maze/domain"
	"github.com/beka-birhanu/lightning-maze/maze"
	"github.com/beka-birhanu/lightning-maze/service/i"
	"google.golang.org/protobuf/encoding/protowire"
)

// ContentType is the media type served for protobuf responses.
const ContentType = "application/x-protobuf"

var (
	ErrOddCellList    = errors.New("cell list has an odd number of coordinates")
	ErrWallCount      = errors.New("wall count does not match dimensions")
	ErrUnexpectedType = errors.New("unexpected wire type")
)

var _ i.Encoder = &Protobuf{}

type Protobuf struct{}

// MarshalFrame implements i.Encoder.
func (p *Protobuf) MarshalFrame(f *domain.Frame) ([]byte, error) {
	return marshalFrame(f), nil
}

// MarshalWalls implements i.Encoder.
func (p *Protobuf) MarshalWalls(w *domain.Walls) ([]byte, error) {
	return marshalWalls(w), nil
}

// MarshalPath implements i.Encoder.
func (p *Protobuf) MarshalPath(pi *domain.PathInfo) ([]byte, error) {
	return marshalPath(pi), nil
}

// UnmarshalFrame decodes a Frame.
func (p *Protobuf) UnmarshalFrame(b []byte) (*domain.Frame, error) {
	return unmarshalFrame(b)
}

// UnmarshalWalls decodes a Walls snapshot.
func (p *Protobuf) UnmarshalWalls(b []byte) (*domain.Walls, error) {
	return unmarshalWalls(b)
}

// UnmarshalPath decodes a PathInfo.
func (p *Protobuf) UnmarshalPath(b []byte) (*domain.PathInfo, error) {
	return unmarshalPath(b)
}

// appendCells writes cells as one packed varint field of alternating col,row.
func appendCells(b []byte, num protowire.Number, cells []maze.Cell) []byte {
	if len(cells) == 0 {
		return b
	}
	var packed []byte
	for _, c := range cells {
		packed = protowire.AppendVarint(packed, uint64(c.Col))
		packed = protowire.AppendVarint(packed, uint64(c.Row))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func consumeCells(v []byte) ([]maze.Cell, error) {
	var coords []int
	for len(v) > 0 {
		x, n := protowire.ConsumeVarint(v)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		coords = append(coords, int(x))
		v = v[n:]
	}
	if len(coords)%2 != 0 {
		return nil, ErrOddCellList
	}

	cells := make([]maze.Cell, 0, len(coords)/2)
	for k := 0; k < len(coords); k += 2 {
		cells = append(cells, maze.Cell{Col: coords[k], Row: coords[k+1]})
	}
	return cells, nil
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// field is one decoded top-level field.
type field struct {
	num    protowire.Number
	varint uint64
	bytes  []byte
}

// consumeFields splits a message into its fields, skipping unknown wire types.
func consumeFields(b []byte) ([]field, error) {
	var fields []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		fields = append(fields, f)
	}
	return fields, nil
}

func wrongType(msg string, num protowire.Number) error {
	return fmt.Errorf("%w: %s field %d", ErrUnexpectedType, msg, num)
}
