// Package job defines the contract for the database-backed job queue.
// Jobs are deferred units of work (campaign executions, contact imports)
// claimed by the worker process with SKIP LOCKED so multiple workers can
// poll the same table safely.
package job
