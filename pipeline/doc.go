/*
Package pipeline binds per-phase datasets to a shared sample-op chain and
drives parallel batch loading.

A Pipeline verifies its op chain for the Pipeline component once at
construction and hands out phase-bound dataset.OpDataset views, applying the
phase filter once per binding. The Loader pulls indices through a worker pool,
one seeded random source per worker, and delivers transformed items in index
order.
*/
package pipeline
