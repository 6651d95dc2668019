// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glstate

import (
	"context"
	"log/slog"
)

// Baseline values established by Arbiter.PreRender. Exported so embedded
// engines and tests can assert the contract rather than restate it.
const (
	// BaselineDepthFunc is the depth comparison after the reset.
	BaselineDepthFunc = CompareLessEqual

	// BaselineFrontFace is the front-face winding after the reset.
	BaselineFrontFace = WindingCCW

	// BaselineCullFace is the culled side after the reset.
	BaselineCullFace = FaceBack

	// BaselineBlendEquation applies to both channel groups after the reset.
	BaselineBlendEquation = BlendEqAdd

	// BaselineBlendSrc and BaselineBlendDst apply to both channel groups
	// after the reset.
	BaselineBlendSrc = BlendOne
	BaselineBlendDst = BlendZero
)

// disabledCaps are switched off by the pre-render reset. Depth testing is
// the one capability switched on.
var disabledCaps = []Capability{
	CapBlend,
	CapCullFace,
	CapScissorTest,
	CapStencilTest,
	CapPolygonOffsetFill,
}

// StateCacheWiper is the slice of the embedded engine the post-render
// handoff needs: a way to discard the engine's internal belief about the
// current context state, so stale cached assumptions are never reused after
// the host has mutated the context.
type StateCacheWiper interface {
	WipeStateCache()
}

// Arbiter executes the shared-context handoff contract around each embedded
// render pass. It is stateless between calls; the same Arbiter can serve
// every frame of an overlay.
type Arbiter struct {
	logger func() *slog.Logger
}

// NewArbiter returns an Arbiter logging reset failures to the logger the
// accessor returns. The accessor is consulted per warning, so logger
// configuration applied after construction is honored. A nil accessor
// silences warnings.
func NewArbiter(logger func() *slog.Logger) *Arbiter {
	if logger == nil {
		discard := slog.New(discardHandler{})
		logger = func() *slog.Logger { return discard }
	}
	return &Arbiter{logger: logger}
}

// PreRender drives the context to the documented baseline, in order:
// capability flags, depth state, color mask, winding and culling, default
// framebuffer, full-size viewport and scissor, blend equation and function,
// and finally every texture unit unbound on both targets.
//
// Skipping this step lets leftover host state corrupt the embedded pass, and
// leftover embedded state corrupt the host's subsequent tiles and labels.
// Individual call failures are logged as warnings and the sequence
// continues: a partial baseline beats an aborted one.
func (a *Arbiter) PreRender(ctx Context) {
	for _, c := range disabledCaps {
		a.check(ctx.Disable(c), "disable", "cap", c.String())
	}
	a.check(ctx.Enable(CapDepthTest), "enable", "cap", CapDepthTest.String())
	a.check(ctx.DepthFunc(BaselineDepthFunc), "depth-func")
	a.check(ctx.DepthMask(true), "depth-mask")
	a.check(ctx.ColorMask(true, true, true, true), "color-mask")
	a.check(ctx.FrontFace(BaselineFrontFace), "front-face")
	a.check(ctx.CullFace(BaselineCullFace), "cull-face")
	a.check(ctx.BindDefaultFramebuffer(), "bind-default-framebuffer")

	w, h := ctx.DrawingBufferSize()
	full := Rect{Width: w, Height: h}
	a.check(ctx.Viewport(full), "viewport")
	a.check(ctx.Scissor(full), "scissor")

	a.check(ctx.BlendEquationSeparate(BaselineBlendEquation, BaselineBlendEquation), "blend-equation")
	a.check(ctx.BlendFuncSeparate(BaselineBlendSrc, BaselineBlendDst, BaselineBlendSrc, BaselineBlendDst), "blend-func")

	units := ctx.MaxCombinedTextureUnits()
	for u := 0; u < units; u++ {
		a.check(ctx.ActiveTexture(u), "active-texture", "unit", u)
		a.check(ctx.UnbindTexture(Texture2D), "unbind-texture-2d", "unit", u)
		a.check(ctx.UnbindTexture(TextureCubeMap), "unbind-texture-cube", "unit", u)
	}
}

// PostRender hands the context back to the host: the embedded engine's
// cached state assumptions are discarded so its next pass re-reads reality
// instead of trusting whatever the host changed in the meantime.
func (a *Arbiter) PostRender(engine StateCacheWiper) {
	if engine != nil {
		engine.WipeStateCache()
	}
}

// check logs a reset failure as a non-fatal warning.
func (a *Arbiter) check(err error, op string, args ...any) {
	if err == nil {
		return
	}
	a.logger().Warn("glstate: context reset call failed",
		append([]any{"op", op, "err", err}, args...)...)
}

// discardHandler silences the Arbiter when no logger is supplied.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
