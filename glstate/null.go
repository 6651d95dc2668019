// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glstate

// NullContext is a Context whose every call succeeds and mutates nothing.
// It serves headless operation and tests, standing in for a real host
// context the same way a null engine stands in for a renderer.
type NullContext struct {
	// Units is the reported combined texture unit count. Zero means 8.
	Units int

	// Width and Height are the reported drawing buffer size. Zero means
	// 300×150, the canvas default.
	Width  int
	Height int
}

// Ensure NullContext implements Context.
var _ Context = (*NullContext)(nil)

func (*NullContext) Enable(Capability) error                                  { return nil }
func (*NullContext) Disable(Capability) error                                 { return nil }
func (*NullContext) DepthFunc(CompareFunc) error                              { return nil }
func (*NullContext) DepthMask(bool) error                                     { return nil }
func (*NullContext) ColorMask(bool, bool, bool, bool) error                   { return nil }
func (*NullContext) FrontFace(Winding) error                                  { return nil }
func (*NullContext) CullFace(Face) error                                      { return nil }
func (*NullContext) BindDefaultFramebuffer() error                            { return nil }
func (*NullContext) Viewport(Rect) error                                      { return nil }
func (*NullContext) Scissor(Rect) error                                       { return nil }
func (*NullContext) BlendEquationSeparate(BlendEquation, BlendEquation) error { return nil }
func (*NullContext) BlendFuncSeparate(a, b, c, d BlendFactor) error           { return nil }
func (*NullContext) ActiveTexture(int) error                                  { return nil }
func (*NullContext) UnbindTexture(TextureTarget) error                        { return nil }

// MaxCombinedTextureUnits reports Units, defaulting to 8.
func (c *NullContext) MaxCombinedTextureUnits() int {
	if c.Units == 0 {
		return 8
	}
	return c.Units
}

// DrawingBufferSize reports Width×Height, defaulting to 300×150.
func (c *NullContext) DrawingBufferSize() (int, int) {
	if c.Width == 0 || c.Height == 0 {
		return 300, 150
	}
	return c.Width, c.Height
}
