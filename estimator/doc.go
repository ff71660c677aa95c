/*
Package estimator orchestrates training runs: it drives the pipeline's
phase-bound datasets through the network epoch by epoch, aggregates monitored
scalar keys, and records each run as a uuid-identified RunReport through a
Reporter.

Weight updates and optimizer stepping happen inside the Model collaborators
behind the network's ops; the estimator only moves data and keeps score.
*/
package estimator
