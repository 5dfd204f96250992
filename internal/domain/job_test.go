package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req:  SubmitRequest{Path: "/rec/show.ts", Name: "Show"},
		},
		{
			name: "unc path",
			req:  SubmitRequest{Path: `\\vdr-u\SDuRec\Recording\show.ts`, Name: "Show"},
		},
		{
			name:    "empty path",
			req:     SubmitRequest{Name: "Show"},
			wantErr: true,
		},
		{
			name:    "null byte in path",
			req:     SubmitRequest{Path: "/rec/\x00show.ts", Name: "Show"},
			wantErr: true,
		},
		{
			name: "blank name and subtitle",
			req:  SubmitRequest{Path: "/rec/show.ts", Name: "  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
			assert.Equal(t, KindInvalidRequest, KindOf(err))
		})
	}
}

func TestNewJob_CopiesParameters(t *testing.T) {
	params := []CustomParameter{{Key: "crf", Value: "22"}}
	job := NewJob(SubmitRequest{Path: "/a", Name: "A", Subtitle: "sub", CustomParameters: params})

	params[0].Value = "30"

	assert.Equal(t, "/a", job.Path)
	assert.Equal(t, "A", job.Name)
	assert.Equal(t, "sub", job.Subtitle)
	v, ok := job.Parameter("crf")
	assert.True(t, ok)
	assert.Equal(t, "22", v)
	assert.False(t, job.IsAssigned())
	assert.False(t, job.CreatedAt.IsZero())
}

func TestJob_AssignIsSnapshot(t *testing.T) {
	w := &Worker{ID: "w1", Name: "encoder-1", Priority: 2, MaximumJobs: 4}
	job := NewJob(SubmitRequest{Path: "/a", Name: "A"})

	job.Assign(w)
	w.Name = "renamed"
	w.Priority = 9

	assert.True(t, job.IsAssigned())
	assert.Equal(t, AssignedWorker{ID: "w1", Name: "encoder-1", Priority: 2}, job.AssignedWorker)
}

func TestWorker_Filters(t *testing.T) {
	tests := []struct {
		name      string
		worker    Worker
		active    int
		available bool
		capacity  bool
	}{
		{"online with room", Worker{Online: true, MaximumJobs: 2}, 1, true, true},
		{"online at max", Worker{Online: true, MaximumJobs: 2}, 2, true, false},
		{"offline", Worker{MaximumJobs: 2}, 0, false, true},
		{"offline ignored", Worker{IgnoreOnline: true, MaximumJobs: 2}, 0, true, true},
		{"zero max", Worker{Online: true}, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.available, tt.worker.IsAvailable())
			assert.Equal(t, tt.capacity, tt.worker.HasCapacity(tt.active))
		})
	}
}

func TestFindWorkerByName(t *testing.T) {
	workers := []Worker{
		{ID: "1", Name: "alpha"},
		{ID: "", Name: "broken"},
		{ID: "3", Name: "gamma"},
	}

	assert.Equal(t, "3", FindWorkerByName(workers, "gamma").ID)
	assert.Equal(t, "1", FindWorkerByName(workers, "alpha").ID)
	assert.Nil(t, FindWorkerByName(workers, "missing"))
}

func TestLoadSnapshot_Count(t *testing.T) {
	snap := LoadSnapshot{"1": 3}

	n, ok := snap.Count("1")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = snap.Count("2")
	assert.False(t, ok)
	assert.Zero(t, n)

	var empty LoadSnapshot
	_, ok = empty.Count("1")
	assert.False(t, ok)
}
