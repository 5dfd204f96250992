package views

import (
	"fmt"
	"strconv"

	"github.com/avior/infuser/internal/domain"
)

// WorkerRow is one roster line on the status page.
type WorkerRow struct {
	Worker  domain.Worker
	Load    int
	HasLoad bool
	Default bool
}

func (r WorkerRow) idText() string {
	if r.Worker.ID == "" {
		return "missing"
	}
	return r.Worker.ID
}

func (r WorkerRow) loadText() string {
	load := "-"
	if r.HasLoad {
		load = strconv.Itoa(r.Load)
	}
	return load + " / " + strconv.Itoa(r.Worker.MaximumJobs)
}

func (r WorkerRow) onlineText() string {
	switch {
	case r.Worker.IgnoreOnline:
		return "ignored"
	case r.Worker.Online:
		return "yes"
	}
	return "no"
}

func (r WorkerRow) windowText() string {
	if r.Worker.AvailabilityStart == "" && r.Worker.AvailabilityEnd == "" {
		return ""
	}
	return r.Worker.AvailabilityStart + "-" + r.Worker.AvailabilityEnd
}

func assignedText(out domain.Outcome) string {
	detail := fmt.Sprintf("%s (%d/%d)", out.Worker, out.Load, out.MaxJobs)
	if out.Fallback {
		detail += " fallback"
	}
	return detail
}
