package widget

// EffectType enumerates the render instructions the page glue understands.
type EffectType string

const (
	// EffectRender replaces the innerHTML of the Target container.
	EffectRender EffectType = "render"
	// EffectShowStep reveals one step panel and hides the loading and error
	// overlays.
	EffectShowStep EffectType = "show-step"
	// EffectShowModal reveals the confirmation modal over the current step.
	EffectShowModal EffectType = "show-modal"
	// EffectHideModal hides the confirmation modal.
	EffectHideModal EffectType = "hide-modal"
	// EffectShowError reveals the error panel and hides the loading overlay.
	EffectShowError EffectType = "show-error"
	// EffectRedirect navigates the page to URL (hosted checkout).
	EffectRedirect EffectType = "redirect"
	// EffectDial opens a tel: URL.
	EffectDial EffectType = "dial"
)

// Effect is one render instruction. Effects are applied in order and carry
// everything the page needs; applying the same list twice yields the same
// view.
type Effect struct {
	Type   EffectType `json:"type"`
	Target string     `json:"target,omitempty"`
	HTML   string     `json:"html,omitempty"`
	Step   Step       `json:"step,omitempty"`
	URL    string     `json:"url,omitempty"`
}

// Result is a transition outcome: the step the session landed on and the
// effects that bring the page to it. A stale transition (superseded by a
// later selection) returns the current step with no effects.
type Result struct {
	Step    Step     `json:"step"`
	Effects []Effect `json:"effects"`
}

func render(target, html string) Effect {
	return Effect{Type: EffectRender, Target: target, HTML: html}
}

func showStep(s Step) Effect {
	return Effect{Type: EffectShowStep, Step: s}
}

func showModal() Effect {
	return Effect{Type: EffectShowModal}
}

func hideModal() Effect {
	return Effect{Type: EffectHideModal}
}

func showError() Effect {
	return Effect{Type: EffectShowError}
}

func redirect(url string) Effect {
	return Effect{Type: EffectRedirect, URL: url}
}

func dial(url string) Effect {
	return Effect{Type: EffectDial, URL: url}
}
