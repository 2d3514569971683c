// Package vos holds the narrow operating system services the shell consumes:
// environment, standard I/O, executable lookup and process spawning.
//
// Each service is an interface so the shell can be driven by the real OS in
// production and by in-memory fakes (see vostest) in tests.
package vos

// VOS bundles the services a shell session needs.
type VOS interface {
	VEnv
	VIO
}

// OSAdapter combines independent environment and I/O implementations into a
// VOS.
type OSAdapter struct {
	VEnv
	VIO
}

var _ VOS = (*OSAdapter)(nil)

// NewOS creates a VOS backed by the given environment and I/O.
func NewOS(env VEnv, vio VIO) *OSAdapter {
	return &OSAdapter{VEnv: env, VIO: vio}
}
