// Package scheduler decides which worker a new job is assigned to.
//
// Workers are grouped into tiers by priority and the tiers are visited in
// ascending priority order. Within a tier the least loaded eligible worker
// wins; the first tier that yields a worker ends the search. When no tier
// yields one, the configured default worker is used without further checks.
//
// Decisions are made over a point-in-time load snapshot and nothing is
// reserved on the chosen worker, so two concurrent decisions can pick the
// same worker.
package scheduler
