package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

const (
	quarterHour     = 0.25
	minSessionHours = 0.5

	// firstSlotLookahead bounds how far down the study order the first
	// session of a day may reach for a high-load topic.
	firstSlotLookahead = 3
)

// SessionCap returns the longest single session for a cognitive load level.
func SessionCap(load domain.LoadLevel) float64 {
	switch load {
	case domain.LoadHigh:
		return 1.5
	case domain.LoadLow:
		return 2.5
	default:
		return 2
	}
}

func roundQuarter(h float64) float64 {
	return math.Round(h/quarterHour) * quarterHour
}

func floorQuarter(h float64) float64 {
	return math.Floor(h/quarterHour+1e-9) * quarterHour
}

type queueItem struct {
	ref       domain.TopicRef
	position  int
	load      domain.LoadLevel
	remaining float64
	reasoning string
}

// buildQueue orders allocated topics by study order. Allocations missing from
// the order follow in allocation order. placed hours are deducted per topic.
func buildQueue(alloc domain.Allocation, loads map[string]domain.LoadLevel, placed map[string]float64) []*queueItem {
	hours := make(map[string]domain.TopicAllocation, len(alloc.TopicAllocations))
	for _, a := range alloc.TopicAllocations {
		if _, dup := hours[a.Key()]; !dup {
			hours[a.Key()] = a
		}
	}

	order := make([]domain.StudyOrderEntry, len(alloc.StudyOrder))
	copy(order, alloc.StudyOrder)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Position < order[j].Position
	})

	var queue []*queueItem
	queued := make(map[string]bool)
	add := func(a domain.TopicAllocation, position int, reasoning string) {
		key := a.Key()
		if queued[key] {
			return
		}
		queued[key] = true
		remaining := roundQuarter(math.Max(0, a.Hours-placed[key]))
		if remaining <= 0 {
			return
		}
		load, ok := loads[key]
		if !ok {
			load = domain.LoadMedium
		}
		queue = append(queue, &queueItem{
			ref:       a.TopicRef,
			position:  position,
			load:      load,
			remaining: remaining,
			reasoning: reasoning,
		})
	}

	for _, e := range order {
		if a, ok := hours[e.Key()]; ok {
			add(a, e.Position, e.Reasoning)
		}
	}
	next := len(order)
	for _, a := range alloc.TopicAllocations {
		if !queued[a.Key()] {
			next++
			add(a, next, "")
		}
	}
	return queue
}

type packer struct {
	queue   []*queueItem
	profile domain.StudentProfile
	labels  []domain.PreferredTime
}

func newPacker(queue []*queueItem, profile domain.StudentProfile) *packer {
	return &packer{
		queue:   queue,
		profile: profile,
		labels:  domain.TimeSlotsFrom(profile.PreferredTime),
	}
}

// packDay fills one calendar day's budget from the queue.
func (p *packer) packDay(day time.Time) []domain.ScheduleSlot {
	budget := floorQuarter(p.profile.HoursOn(day))
	used := make(map[*queueItem]bool)
	var slots []domain.ScheduleSlot
	prevHigh := false

	for budget >= quarterHour {
		item := p.pick(len(slots) == 0, prevHigh, used, budget)
		if item == nil {
			break
		}
		dur := math.Min(math.Min(item.remaining, SessionCap(item.load)), budget)

		slots = append(slots, domain.ScheduleSlot{
			Day:           day.Weekday().String(),
			Date:          formatDate(day),
			TimeSlot:      p.labels[len(slots)%len(p.labels)],
			TopicRef:      item.ref,
			Duration:      dur,
			CognitiveLoad: item.load,
			Reasoning:     slotReasoning(item, len(slots) == 0, p.labels[0]),
		})

		item.remaining = roundQuarter(item.remaining - dur)
		budget = roundQuarter(budget - dur)
		used[item] = true
		prevHigh = item.load == domain.LoadHigh
	}
	return slots
}

// pick selects the next topic for a day. Topics already studied today are
// taken only when no other topic has hours left. The first session prefers a
// high-load topic near the head of the order; a high-load session is not
// followed by another when a lighter topic is available.
func (p *packer) pick(first, prevHigh bool, used map[*queueItem]bool, budget float64) *queueItem {
	var fresh, repeat []*queueItem
	for _, it := range p.queue {
		if it.remaining <= 0 {
			continue
		}
		if budget < minSessionHours && it.remaining > budget {
			continue
		}
		if used[it] {
			repeat = append(repeat, it)
		} else {
			fresh = append(fresh, it)
		}
	}

	candidates := fresh
	if len(candidates) == 0 {
		candidates = repeat
	}
	if len(candidates) == 0 {
		return nil
	}

	switch {
	case first:
		for i, it := range candidates {
			if i >= firstSlotLookahead {
				break
			}
			if it.load == domain.LoadHigh {
				return it
			}
		}
	case prevHigh:
		for _, it := range candidates {
			if it.load != domain.LoadHigh {
				return it
			}
		}
	}
	return candidates[0]
}

func slotReasoning(item *queueItem, first bool, preferred domain.PreferredTime) string {
	if first && item.load == domain.LoadHigh {
		return fmt.Sprintf("High cognitive load topic placed in your preferred %s slot", preferred)
	}
	return fmt.Sprintf("Study order position %d, %s cognitive load", item.position, item.load)
}
