package scheduler

import (
	"slices"

	"github.com/avior/infuser/internal/domain"
)

// Tier holds every worker sharing one priority value, in roster order.
type Tier struct {
	Priority int
	Workers  []domain.Worker
}

// GroupByPriority partitions workers into tiers sorted by ascending priority.
func GroupByPriority(workers []domain.Worker) []Tier {
	if len(workers) == 0 {
		return nil
	}

	byPriority := make(map[int][]domain.Worker)
	for _, w := range workers {
		byPriority[w.Priority] = append(byPriority[w.Priority], w)
	}

	priorities := make([]int, 0, len(byPriority))
	for p := range byPriority {
		priorities = append(priorities, p)
	}
	slices.Sort(priorities)

	tiers := make([]Tier, 0, len(priorities))
	for _, p := range priorities {
		tiers = append(tiers, Tier{Priority: p, Workers: byPriority[p]})
	}
	return tiers
}
