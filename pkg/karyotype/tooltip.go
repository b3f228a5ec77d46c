package karyotype

import (
	"github.com/karyoview/karyoview/pkg/observability"
	"github.com/karyoview/karyoview/pkg/surface"
)

// Bubble dimensions of the hover tooltip.
const (
	tipTailDepth  = 30 // FH
	tipBodyHeight = 25 // H
	tipRadius     = 5  // R
	tipControl    = 5  // C
	tipTailWidth  = 5  // S
	tipTailOffset = 5  // off
	tipPadding    = 20 // added to the measured text width
	tipPointerDX  = 8
	tipPointerDY  = 34
)

const (
	styleHidden  = "opacity: 0;"
	styleVisible = "opacity: 100;"
)

// tooltip is the overlay group of one rendering.
type tooltip struct {
	group surface.Element
	path  surface.Element
	text  surface.Element
}

// TooltipState is a snapshot of the overlay.
type TooltipState struct {
	Visible   bool
	Text      string
	Path      string
	Transform string
}

func (v *View) newTooltip(svg surface.Element) *tooltip {
	t := &tooltip{}

	t.group = v.el("g")
	t.group.SetAttribute("style", styleHidden)

	t.path = v.el("path")
	t.path.SetAttribute("style", "fill: white; stroke: black;")
	t.group.AppendChild(t.path)

	t.text = v.el("text")
	t.text.SetAttribute("x", "8")
	t.text.SetAttribute("y", "18")
	t.group.AppendChild(t.text)

	svg.AppendChild(t.group)
	return t
}

// bindTooltip subscribes rect to the pointer events that drive the overlay.
// Handlers check that rect still belongs to the live rendering, so events
// on a discarded surface are dropped.
func (v *View) bindTooltip(rect surface.Element) {
	root := v.root
	live := func() bool { return v.root != nil && v.root == root && v.tip != nil }

	rect.AddEventListener(surface.PointerMove, func(ev surface.Event) {
		if live() {
			v.showTooltip(rect, ev)
		}
	})
	rect.AddEventListener(surface.PointerLeave, func(surface.Event) {
		if live() {
			v.tip.group.SetAttribute("style", styleHidden)
		}
	})
	rect.AddEventListener(surface.PointerDown, func(surface.Event) {
		if !live() {
			return
		}
		desc, _ := rect.Attribute(AttrTooltipText)
		observability.View().OnSelect(desc)
		v.onSelect(desc)
	})
}

// showTooltip retexts, resizes and moves the bubble next to the pointer.
func (v *View) showTooltip(rect surface.Element, ev surface.Event) {
	t := v.tip
	desc, _ := rect.Attribute(AttrTooltipText)
	t.text.SetText(desc)
	width := v.doc.TextWidth(t.text)

	ctm := v.doc.ScreenCTM(v.root)
	a, d := ctm.A, ctm.D
	if a == 0 {
		a = 1
	}
	if d == 0 {
		d = 1
	}
	x := (ev.ClientX - ctm.E - tipPointerDX) / a
	y := (ev.ClientY - ctm.F - tipPointerDY) / d

	t.group.SetAttribute("transform", "translate("+num(x)+" "+num(y)+")")
	t.path.SetAttribute("d", bubbleFor(width))
	t.group.SetAttribute("style", styleVisible)
}

// fittedBubble measures desc on a detached text node and returns the
// matching bubble path.
func (v *View) fittedBubble(desc string) string {
	probe := v.el("text")
	probe.SetText(desc)
	return bubbleFor(v.doc.TextWidth(probe))
}

func bubbleFor(textWidth float64) string {
	return BubblePath(tipTailDepth, tipBodyHeight, textWidth+tipPadding,
		tipRadius, tipControl, tipTailWidth, tipTailOffset)
}

// Tooltip returns the current overlay state.
func (v *View) Tooltip() TooltipState {
	if v.tip == nil {
		return TooltipState{}
	}
	style, _ := v.tip.group.Attribute("style")
	path, _ := v.tip.path.Attribute("d")
	tr, _ := v.tip.group.Attribute("transform")
	return TooltipState{
		Visible:   style == styleVisible,
		Text:      v.tip.text.Text(),
		Path:      path,
		Transform: tr,
	}
}

// HitRects returns the hit rectangles of the live rendering in draw order.
func (v *View) HitRects() []surface.Element {
	if v.root == nil {
		return nil
	}
	return surface.FindByAttribute(v.root, AttrTooltipText)
}
