package hierseg

import "errors"

var (
	// ErrNilGraph is returned by New when no graph is supplied.
	ErrNilGraph = errors.New("graph must not be nil")

	// ErrNilPolicy is returned by New when no score policy is supplied.
	ErrNilPolicy = errors.New("score policy must not be nil")

	// ErrAlreadyRun is returned by Run if the agglomerator has already
	// consumed its graph. An Agglomerator is single-use: re-running over
	// an already contracted graph would re-deliver merge notifications.
	ErrAlreadyRun = errors.New("agglomerator has already run")
)
