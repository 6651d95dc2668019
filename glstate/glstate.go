// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glstate arbitrates the GL-style rendering state that the host map
// renderer and the embedded scene renderer share within a single frame.
//
// Both renderers execute in the same physical context, time-sliced inside
// the host's draw callback; neither can assume the other left compatible
// state behind. The Arbiter enforces a documented baseline before the
// embedded render pass and discards the embedded renderer's cached state
// assumptions after it, so the handoff is clean in both directions.
//
// The Context interface follows the same integration principle as the rest
// of the module: the overlay RECEIVES the context from the host, it never
// creates one. Hosts wrap their native context handle in this interface.
package glstate

// Capability is a toggleable context state flag.
type Capability int

// Capabilities reset by the pre-render baseline.
const (
	CapBlend Capability = iota
	CapCullFace
	CapScissorTest
	CapStencilTest
	CapPolygonOffsetFill
	CapDepthTest
)

// String returns the capability name as used in warning logs.
func (c Capability) String() string {
	switch c {
	case CapBlend:
		return "blend"
	case CapCullFace:
		return "cull-face"
	case CapScissorTest:
		return "scissor-test"
	case CapStencilTest:
		return "stencil-test"
	case CapPolygonOffsetFill:
		return "polygon-offset-fill"
	case CapDepthTest:
		return "depth-test"
	default:
		return "unknown"
	}
}

// CompareFunc is a depth comparison function.
type CompareFunc int

// Depth comparison functions.
const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// Winding selects which vertex order defines a front-facing triangle.
type Winding int

// Winding orders.
const (
	WindingCCW Winding = iota
	WindingCW
)

// Face selects which triangle side an operation applies to.
type Face int

// Face selections.
const (
	FaceBack Face = iota
	FaceFront
	FaceFrontAndBack
)

// BlendEquation combines source and destination blend terms.
type BlendEquation int

// Blend equations.
const (
	BlendEqAdd BlendEquation = iota
	BlendEqSubtract
	BlendEqReverseSubtract
)

// BlendFactor weights a blend term.
type BlendFactor int

// Blend factors used by the baseline.
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// TextureTarget is a bindable texture kind.
type TextureTarget int

// Texture targets unbound by the baseline.
const (
	Texture2D TextureTarget = iota
	TextureCubeMap
)

// Rect is a viewport or scissor rectangle in pixels.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Context is the host-provided handle to the shared rendering context.
//
// Each method maps to one state mutation on the underlying context. Methods
// return an error so a host wrapper can surface individual call failures;
// the Arbiter treats such failures as non-fatal and keeps going, since a
// partially applied baseline is still strictly better than none.
type Context interface {
	// Enable turns a capability on.
	Enable(cap Capability) error

	// Disable turns a capability off.
	Disable(cap Capability) error

	// DepthFunc sets the depth comparison function.
	DepthFunc(fn CompareFunc) error

	// DepthMask enables or disables depth writes.
	DepthMask(write bool) error

	// ColorMask enables or disables writes per color channel.
	ColorMask(r, g, b, a bool) error

	// FrontFace sets which winding order is front-facing.
	FrontFace(w Winding) error

	// CullFace sets which face is culled when culling is enabled.
	CullFace(f Face) error

	// BindDefaultFramebuffer unbinds any bound framebuffer and rebinds
	// the context's default one.
	BindDefaultFramebuffer() error

	// Viewport sets the viewport rectangle.
	Viewport(r Rect) error

	// Scissor sets the scissor rectangle.
	Scissor(r Rect) error

	// BlendEquationSeparate sets the blend equation per channel group.
	BlendEquationSeparate(rgb, alpha BlendEquation) error

	// BlendFuncSeparate sets the blend factors per channel group.
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha BlendFactor) error

	// ActiveTexture selects the active texture unit.
	ActiveTexture(unit int) error

	// UnbindTexture unbinds the given target on the active unit.
	UnbindTexture(target TextureTarget) error

	// MaxCombinedTextureUnits reports the device's combined texture unit
	// count. The baseline unbinds every unit up to this value.
	MaxCombinedTextureUnits() int

	// DrawingBufferSize reports the context's full pixel size, used for
	// the baseline viewport and scissor rectangles.
	DrawingBufferSize() (width, height int)
}
