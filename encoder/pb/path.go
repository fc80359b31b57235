package pb

import (
	"github.com/beka-birhanu/lightning-maze/domain"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	pathCells    protowire.Number = 1
	pathDistance protowire.Number = 2
)

func marshalPath(p *domain.PathInfo) []byte {
	var b []byte
	b = appendCells(b, pathCells, p.Cells)
	return appendVarintField(b, pathDistance, uint64(p.Distance))
}

// unmarshalPath decodes a path; the target is its last cell.
func unmarshalPath(b []byte) (*domain.PathInfo, error) {
	fields, err := consumeFields(b)
	if err != nil {
		return nil, err
	}

	p := &domain.PathInfo{}
	for _, fl := range fields {
		switch fl.num {
		case pathCells:
			cells, err := consumeCells(fl.bytes)
			if err != nil {
				return nil, err
			}
			p.Cells = append(p.Cells, cells...)
		case pathDistance:
			p.Distance = int(fl.varint)
		}
	}
	if len(p.Cells) > 0 {
		p.Target = p.Cells[len(p.Cells)-1]
	}
	return p, nil
}
