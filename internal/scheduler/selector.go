package scheduler

import (
	"fmt"
	"math"
	"strings"

	"github.com/avior/infuser/internal/domain"
)

// TieBreak controls how workers without a load snapshot entry compete
// against the candidate retained so far in a tier.
type TieBreak string

const (
	// TieBreakLegacy lets a worker without a snapshot entry replace the
	// retained candidate unconditionally, even one that also has no entry,
	// and without checking its maximum job count.
	TieBreakLegacy TieBreak = "legacy"
	// TieBreakStrict counts a missing entry as zero active jobs and applies
	// the same strictly-lower and capacity checks as every other worker.
	TieBreakStrict TieBreak = "strict"
)

func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(strings.ToLower(strings.TrimSpace(s))) {
	case "", TieBreakLegacy:
		return TieBreakLegacy, nil
	case TieBreakStrict:
		return TieBreakStrict, nil
	default:
		return "", fmt.Errorf("unknown tie break %q (want legacy or strict)", s)
	}
}

// Selection is the worker chosen for a job together with the numbers the
// decision was based on.
type Selection struct {
	Worker   domain.Worker
	Load     int
	MaxJobs  int
	Tier     int
	Fallback bool
}

type Selector struct {
	tieBreak TieBreak
}

func NewSelector(tieBreak TieBreak) *Selector {
	if tieBreak == "" {
		tieBreak = TieBreakLegacy
	}
	return &Selector{tieBreak: tieBreak}
}

func (s *Selector) TieBreak() TieBreak {
	return s.tieBreak
}

// Select walks the tiers in order and returns the first tier's best
// candidate. It returns a domain.KindNoEligibleWorker error when every tier is
// exhausted and a domain.KindDataIntegrity error as soon as it meets a worker
// without an ID.
func (s *Selector) Select(tiers []Tier, snapshot domain.LoadSnapshot) (*Selection, error) {
	for _, tier := range tiers {
		sel, err := s.selectInTier(tier, snapshot)
		if err != nil {
			return nil, err
		}
		if sel != nil {
			return sel, nil
		}
	}
	return nil, &domain.Error{
		Kind: domain.KindNoEligibleWorker,
		Op:   "select",
		Msg:  fmt.Sprintf("no eligible worker in %d tier(s)", len(tiers)),
	}
}

func (s *Selector) selectInTier(tier Tier, snapshot domain.LoadSnapshot) (*Selection, error) {
	lowest := math.MaxInt
	var best *domain.Worker

	for i := range tier.Workers {
		w := &tier.Workers[i]
		// abort even for offline workers
		if w.ID == "" {
			return nil, &domain.Error{
				Kind:    domain.KindDataIntegrity,
				Op:      "select",
				Worker:  w.Name,
				Tier:    tier.Priority,
				HasTier: true,
				Msg:     "worker has no id",
			}
		}

		if !w.IsAvailable() {
			continue
		}

		count, ok := snapshot.Count(w.ID)
		if !ok && s.tieBreak == TieBreakLegacy {
			best = w
			lowest = 0
			continue
		}

		if count < lowest && w.HasCapacity(count) {
			best = w
			lowest = count
		}
	}

	if best == nil {
		return nil, nil
	}
	return &Selection{
		Worker:  *best,
		Load:    lowest,
		MaxJobs: best.MaximumJobs,
		Tier:    tier.Priority,
	}, nil
}
