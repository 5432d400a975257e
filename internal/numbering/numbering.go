package numbering

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
)

const (
	SequenceQuote = "quote"
	SequenceOrder = "order"
)

type sequencer interface {
	NextSequence(ctx context.Context, name string) (int64, error)
}

// Numberer issues human-facing document numbers such as ORC-000042.
type Numberer struct {
	seq    sequencer
	name   string
	prefix string
	digits int
}

// New builds a numberer over the named sequence.
func New(seq sequencer, name, prefix string, digits int) (*Numberer, error) {
	if seq == nil {
		return nil, fmt.Errorf("sequencer required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("sequence name required")
	}
	if digits <= 0 {
		digits = 1
	}
	return &Numberer{seq: seq, name: name, prefix: prefix, digits: digits}, nil
}

// Next reserves the next number. Numbers are never reused, even when the
// document that reserved one is never saved.
func (n *Numberer) Next(ctx context.Context) (string, error) {
	value, err := n.seq.NextSequence(ctx, n.name)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve document number")
	}
	return Format(n.prefix, n.digits, value), nil
}

// Format zero-pads value to digits and prepends prefix.
func Format(prefix string, digits int, value int64) string {
	return fmt.Sprintf("%s%0*d", prefix, digits, value)
}
