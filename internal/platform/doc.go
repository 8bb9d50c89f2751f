// Package platform holds OS integration helpers (downloads directory,
// folder opening) and the playlist expansion service.
package platform
