package ui

// Package ui implements the Fyne desktop front-end: the options form, the
// progress/log surface, and the marshaling of worker callbacks onto the
// interactive thread.
