package ops

import "context"

// TypeOptions parameterizes text entry.
type TypeOptions struct {
	Text string
	// Key names a single key to press instead of typing text.
	Key       string
	Modifiers []string
	// DelayMs is the pause between characters.
	DelayMs int
}

// TypeResult reports a typing operation.
type TypeResult struct {
	Result `yaml:",inline"`
	Text   string `yaml:"text,omitempty" json:"text,omitempty"`
	Key    string `yaml:"key,omitempty" json:"key,omitempty"`
}

// TypeText activates the device surface and types text or presses a key
// into the focused field.
func (o *Ops) TypeText(ctx context.Context, opts TypeOptions) *TypeResult {
	if err := o.provider.Input.Prepare(ctx); err != nil {
		return &TypeResult{Result: failed(err)}
	}
	if opts.Key != "" {
		if err := o.provider.Typist.PressKey(ctx, opts.Key, opts.Modifiers); err != nil {
			return &TypeResult{Result: failed(err)}
		}
		return &TypeResult{Result: succeeded(), Key: opts.Key}
	}
	if err := o.provider.Typist.TypeText(ctx, opts.Text, opts.DelayMs); err != nil {
		return &TypeResult{Result: failed(err)}
	}
	return &TypeResult{Result: succeeded(), Text: opts.Text}
}
