package pb

import (
	"github.com/beka-birhanu/lightning-maze/domain"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	wallsWidth      protowire.Number = 1
	wallsHeight     protowire.Number = 2
	wallsVertical   protowire.Number = 3
	wallsHorizontal protowire.Number = 4
)

func marshalWalls(w *domain.Walls) []byte {
	var b []byte
	b = appendVarintField(b, wallsWidth, uint64(w.Width))
	b = appendVarintField(b, wallsHeight, uint64(w.Height))
	b = protowire.AppendTag(b, wallsVertical, protowire.BytesType)
	b = protowire.AppendBytes(b, wallBytes(w.Vertical))
	b = protowire.AppendTag(b, wallsHorizontal, protowire.BytesType)
	return protowire.AppendBytes(b, wallBytes(w.Horizontal))
}

func wallBytes(walls []bool) []byte {
	out := make([]byte, len(walls))
	for k, present := range walls {
		if present {
			out[k] = 1
		}
	}
	return out
}

func wallBools(b []byte) []bool {
	out := make([]bool, len(b))
	for k, v := range b {
		out[k] = v != 0
	}
	return out
}

func unmarshalWalls(b []byte) (*domain.Walls, error) {
	fields, err := consumeFields(b)
	if err != nil {
		return nil, err
	}

	w := &domain.Walls{}
	for _, fl := range fields {
		switch fl.num {
		case wallsWidth:
			w.Width = int(fl.varint)
		case wallsHeight:
			w.Height = int(fl.varint)
		case wallsVertical:
			w.Vertical = wallBools(fl.bytes)
		case wallsHorizontal:
			w.Horizontal = wallBools(fl.bytes)
		}
	}

	if len(w.Vertical) != (w.Width+1)*w.Height || len(w.Horizontal) != w.Width*(w.Height+1) {
		return nil, ErrWallCount
	}
	return w, nil
}
