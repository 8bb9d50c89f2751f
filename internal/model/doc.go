package model

// Package model defines the domain value objects shared by every front-end:
// the immutable download settings, the run status enum, and the
// display-ready progress snapshot derived from raw engine updates.
