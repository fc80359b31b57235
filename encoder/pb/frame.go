package pb

import (
	"github.com/beka-birhanu/lightning-maze/domain"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	frameLayer     protowire.Number = 1
	frameCells     protowire.Number = 2
	frameExhausted protowire.Number = 3
)

func marshalFrame(f *domain.Frame) []byte {
	var b []byte
	b = appendVarintField(b, frameLayer, uint64(f.Layer))
	b = appendCells(b, frameCells, f.Cells)
	if f.Exhausted {
		b = appendVarintField(b, frameExhausted, protowire.EncodeBool(true))
	}
	return b
}

func unmarshalFrame(b []byte) (*domain.Frame, error) {
	fields, err := consumeFields(b)
	if err != nil {
		return nil, err
	}

	f := &domain.Frame{}
	for _, fl := range fields {
		switch fl.num {
		case frameLayer:
			if fl.bytes != nil {
				return nil, wrongType("frame", fl.num)
			}
			f.Layer = int(fl.varint)
		case frameCells:
			cells, err := consumeCells(fl.bytes)
			if err != nil {
				return nil, err
			}
			f.Cells = append(f.Cells, cells...)
		case frameExhausted:
			f.Exhausted = protowire.DecodeBool(fl.varint)
		}
	}
	return f, nil
}
