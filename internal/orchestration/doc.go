// Package orchestration evaluates a batch of programs concurrently and
// aggregates their results. Presentation is reached only through the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
