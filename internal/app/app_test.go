package app

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

var discard = slog.New(slog.DiscardHandler)

type seqIDs struct{ n atomic.Int64 }

func (s *seqIDs) NewID() string {
	return fmt.Sprintf("id-%d", s.n.Add(1))
}
