// Package worker hosts the background loops: the job scheduler that
// dispatches queued jobs, the send worker pool that drains campaign
// sends, the recurring scheduler that fires cron campaigns, and the
// completion sweep that resolves finished one-time campaigns.
package worker
