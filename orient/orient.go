// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package orient reconciles the embedded scene's up-axis convention with the
// canonical Y-up frame the overlay renders in.
//
// An Orientation is an immutable value holding the minimal rotation from a
// configured up axis onto canonical up (0,1,0), its inverse, and the Euler
// angle triple some host APIs require instead of a quaternion. The Euler
// triple is always derived from the quaternion at construction; it is never
// set independently, so it can never go stale against the quaternion.
package orient

import (
	"context"
	"log/slog"
	"sync/atomic"

	"cogentcore.org/core/math32"
)

// canonicalUp is the up vector of the overlay's render frame.
var canonicalUp = math32.Vec3(0, 1, 0)

// Orientation maps a configured up axis onto canonical up. The zero value is
// not meaningful; use Identity, FromUpVector, or FromAxisName.
type Orientation struct {
	// Quat rotates the configured up axis onto canonical up (0,1,0).
	Quat math32.Quat

	// Inverse rotates canonical-up-aligned points back into the
	// configured frame.
	Inverse math32.Quat

	// Euler is the XYZ Euler angle triple, in radians, derived from Quat.
	Euler math32.Vector3
}

// Identity returns the orientation for the canonical Y-up axis.
func Identity() Orientation {
	var q math32.Quat
	q.SetIdentity()
	return fromQuat(q)
}

// FromUpVector returns the orientation whose minimal rotation maps the given
// axis vector, normalized, onto canonical up. A zero-length vector logs a
// warning and yields the identity orientation.
func FromUpVector(up math32.Vector3) Orientation {
	if up.Length() == 0 {
		logger().Warn("orient: zero-length up vector, keeping Y up")
		return Identity()
	}
	var q math32.Quat
	q.SetFromUnitVectors(up.Normal(), canonicalUp)
	return fromQuat(q)
}

// FromAxisName returns the orientation for a named axis. "Y" is canonical
// and yields the identity; "Z" rotates (0,0,1) onto (0,1,0). Unknown names
// log a warning and fall back to "Y" untouched.
func FromAxisName(name string) Orientation {
	switch name {
	case "Y", "y":
		return Identity()
	case "Z", "z":
		return FromUpVector(math32.Vec3(0, 0, 1))
	default:
		logger().Warn("orient: unknown up axis, keeping Y up", "axis", name)
		return Identity()
	}
}

// fromQuat builds the full Orientation value from a unit quaternion,
// deriving the inverse and the Euler triple.
func fromQuat(q math32.Quat) Orientation {
	return Orientation{
		Quat:    q,
		Inverse: q.Inverse(),
		Euler:   q.ToEuler(),
	}
}

// Apply rotates v from the configured frame into the canonical Y-up frame.
func (o Orientation) Apply(v math32.Vector3) math32.Vector3 {
	return v.MulQuat(o.Quat)
}

// Unapply rotates an already up-aligned v back into the configured frame.
func (o Orientation) Unapply(v math32.Vector3) math32.Vector3 {
	return v.MulQuat(o.Inverse)
}

// IsIdentity reports whether the orientation leaves vectors unchanged.
func (o Orientation) IsIdentity() bool {
	return o.Quat.IsIdentity()
}

// nopHandler discards all records; Enabled returns false so disabled logging
// costs nothing.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used for recoverable conditions such as
// unknown axis names. By default the package is silent. Pass nil to restore
// the silent default. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

func logger() *slog.Logger {
	return loggerPtr.Load()
}
