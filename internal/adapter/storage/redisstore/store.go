package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/avior/infuser/internal/domain"
	"github.com/avior/infuser/internal/port"
)

const (
	workersKey     = "infuser:workers"
	workerOrderKey = "infuser:workers:order"
	workerSeqKey   = "infuser:workers:seq"
	loadKey        = "infuser:load"
	jobCountKey    = "infuser:jobs:count"
	jobKeyPrefix   = "infuser:job:"
)

// insertJob commits the job hash and bumps the worker's load in one step.
// KEYS: job, load, count. ARGV: payload, worker id.
var insertJob = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'data', ARGV[1], 'worker', ARGV[2])
if ARGV[2] ~= '' then
	redis.call('HINCRBY', KEYS[2], ARGV[2], 1)
end
redis.call('INCR', KEYS[3])
return 1
`)

// removeJob deletes the job hash and releases its load entry. Fields that
// drop to zero are removed so the worker reads as having no entry.
// KEYS: job, load, count.
var removeJob = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
local id = redis.call('HGET', KEYS[1], 'worker')
redis.call('DEL', KEYS[1])
if id and id ~= '' then
	if redis.call('HINCRBY', KEYS[2], id, -1) <= 0 then
		redis.call('HDEL', KEYS[2], id)
	end
end
redis.call('DECR', KEYS[3])
return 1
`)

// Store keeps the roster and the jobs in Redis. Load counters live in a hash
// keyed by worker ID and move together with job inserts and removals.
type Store struct {
	client *redis.Client
}

// NewStore connects to addr, which is either host:port or a redis:// or
// rediss:// URL.
func NewStore(ctx context.Context, addr string) (*Store, error) {
	opts, err := parseRedisURL(addr)
	if err != nil {
		return nil, err
	}
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: c}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// parseRedisURL accepts a plain host:port or a redis:// / rediss:// URL with
// optional credentials and database number.
func parseRedisURL(addr string) (*redis.Options, error) {
	if !strings.Contains(addr, "://") {
		return &redis.Options{Addr: addr}, nil
	}
	return redis.ParseURL(addr)
}

// ListWorkers returns the roster in the order workers were first saved.
func (s *Store) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	names, err := s.client.ZRange(ctx, workerOrderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list worker order: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}

	raw, err := s.client.HMGet(ctx, workersKey, names...).Result()
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	workers := make([]domain.Worker, 0, len(raw))
	for i, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var w domain.Worker
		if err := json.Unmarshal([]byte(str), &w); err != nil {
			return nil, fmt.Errorf("decode worker %q: %w", names[i], err)
		}
		workers = append(workers, w)
	}
	return workers, nil
}

func (s *Store) LoadSnapshot(ctx context.Context) (domain.LoadSnapshot, error) {
	raw, err := s.client.HGetAll(ctx, loadKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read load: %w", err)
	}
	snapshot := make(domain.LoadSnapshot, len(raw))
	for id, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("load for worker %q: %w", id, err)
		}
		snapshot[id] = n
	}
	return snapshot, nil
}

// SaveWorker inserts the worker or replaces the one with the same name.
func (s *Store) SaveWorker(ctx context.Context, w *domain.Worker) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}

	seq, err := s.client.Incr(ctx, workerSeqKey).Result()
	if err != nil {
		return fmt.Errorf("next worker seq: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, workersKey, w.Name, data)
		pipe.ZAddNX(ctx, workerOrderKey, redis.Z{Score: float64(seq), Member: w.Name})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save worker %q: %w", w.Name, err)
	}
	return nil
}

func (s *Store) JobExists(ctx context.Context, path string) (bool, error) {
	n, err := s.client.Exists(ctx, jobKey(path)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// InsertJob stores the job and increments the assigned worker's load
// atomically.
func (s *Store) InsertJob(ctx context.Context, job *domain.Job) (string, error) {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	stored := *job
	stored.ID = uuid.NewString()

	data, err := json.Marshal(&stored)
	if err != nil {
		return "", err
	}

	keys := []string{jobKey(job.Path), loadKey, jobCountKey}
	ok, err := insertJob.Run(ctx, s.client, keys, data, job.AssignedWorker.ID).Int()
	if err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}
	if ok == 0 {
		return "", domain.ErrJobExists
	}
	job.ID = stored.ID
	return job.ID, nil
}

func (s *Store) GetJob(ctx context.Context, path string) (*domain.Job, error) {
	data, err := s.client.HGet(ctx, jobKey(path), "data").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var job domain.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &job, nil
}

// RemoveJob deletes a finished job and releases the worker slot it held.
func (s *Store) RemoveJob(ctx context.Context, path string) error {
	keys := []string{jobKey(path), loadKey, jobCountKey}
	n, err := removeJob.Run(ctx, s.client, keys).Int()
	if err != nil {
		return fmt.Errorf("remove job: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) CountJobs(ctx context.Context) (int, error) {
	n, err := s.client.Get(ctx, jobCountKey).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func jobKey(path string) string {
	return jobKeyPrefix + path
}

var (
	_ port.WorkerRegistry = (*Store)(nil)
	_ port.WorkerAdmin    = (*Store)(nil)
	_ port.JobStore       = (*Store)(nil)
)
