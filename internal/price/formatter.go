package price

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Display mode constants
const (
	ModeNet      Mode = "net"
	ModeGross    Mode = "gross"
	ModeFull     Mode = "full"
	ModeVatValue Mode = "vat_value"
)

// Mode selects which figure of a price a formatted fragment shows.
type Mode string

// DefaultWrapperElement is used when a build request names no wrapper.
const DefaultWrapperElement = "div"

// internal precision for rounding-step snapping, high enough to keep
// step-division free of drift before the final snap
const stepScale = 6

// Settings controls how a price is formatted. A zero value is usable.
type Settings struct {
	// Label shows a localized Net/Gross/VAT caption next to the amount.
	Label bool `json:"label"`
	// VatInfo shows the VAT rate alongside the amount.
	VatInfo bool `json:"vat_info"`
	// DisplayCurrency converts all displayed figures into this currency when
	// a rate is published; otherwise the native currency is kept silently.
	DisplayCurrency string `json:"display_currency,omitempty"`
	// WrapperElement is presentation-only and defaults to a generic block.
	WrapperElement string `json:"wrapper_element,omitempty"`
}

// FormatHook is invoked before each build and may mutate the settings.
// Hooks receive the price's raw values and resolved currency for context.
type FormatHook func(s *Settings, v Values, c Currency)

// Fragment is the render-tree node a build produces. Full mode carries the
// net and gross sub-builds as children.
type Fragment struct {
	Mode           Mode            `json:"mode"`
	Element        string          `json:"element"`
	Label          string          `json:"label,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Formatted      string          `json:"formatted"`
	Currency       Currency        `json:"currency"`
	VatRatePercent decimal.Decimal `json:"vat_rate_percent"`
	ShowVatInfo    bool            `json:"show_vat_info"`
	Children       []*Fragment     `json:"children,omitempty"`
}

// Renderer turns a fragment into a final display string.
type Renderer interface {
	Render(f *Fragment) string
}

// Formatter builds display fragments from prices. It never fails: degraded
// inputs (unknown display currency, no published rate) fall back to the
// price's native figures so the output is always displayable.
type Formatter struct {
	renderer Renderer
	hooks    []FormatHook
}

// NewFormatter returns a formatter rendering through r. Hooks run in order
// before every build and may adjust the settings.
func NewFormatter(r Renderer, hooks ...FormatHook) *Formatter {
	return &Formatter{renderer: r, hooks: hooks}
}

// Build produces the render fragment for the given mode.
func (f *Formatter) Build(ctx context.Context, p *Price, mode Mode, s Settings) *Fragment {
	if s.WrapperElement == "" {
		s.WrapperElement = DefaultWrapperElement
	}

	for _, hook := range f.hooks {
		hook(&s, p.Values(), p.Currency())
	}

	display := p
	if s.DisplayCurrency != "" && s.DisplayCurrency != p.Currency().ID {
		// Best effort: keep the native currency when no rate is published
		// or the lookup fails.
		if converted, err := p.Exchanged(ctx, s.DisplayCurrency); err == nil && converted != nil {
			display = converted
		}
	}

	if mode == ModeFull {
		// Both halves are shown together, so each suppresses its own VAT
		// annotation regardless of the incoming setting.
		sub := s
		sub.VatInfo = false
		sub.DisplayCurrency = ""
		return &Fragment{
			Mode:           ModeFull,
			Element:        s.WrapperElement,
			Currency:       display.Currency(),
			VatRatePercent: display.VatRatePercent(),
			Children: []*Fragment{
				f.Build(ctx, display, ModeNet, sub),
				f.Build(ctx, display, ModeGross, sub),
			},
		}
	}

	var amount decimal.Decimal
	showVat := s.VatInfo
	switch mode {
	case ModeGross:
		amount = display.GrossPrice()
	case ModeVatValue:
		amount = display.VatValue()
		// the rate annotation is redundant next to the rate-derived figure
		showVat = false
	default:
		mode = ModeNet
		amount = display.NetPrice()
	}

	label := ""
	if s.Label {
		label = modeLabel(mode)
	}

	return &Fragment{
		Mode:           mode,
		Element:        s.WrapperElement,
		Label:          label,
		Amount:         amount,
		Formatted:      FormatAmount(amount, display.Currency()),
		Currency:       display.Currency(),
		VatRatePercent: display.VatRatePercent(),
		ShowVatInfo:    showVat,
	}
}

// Format builds then renders a fragment to a plain string.
func (f *Formatter) Format(ctx context.Context, p *Price, mode Mode, s Settings) string {
	return f.renderer.Render(f.Build(ctx, p, mode, s))
}

// FormatNet renders the net figure.
func (f *Formatter) FormatNet(ctx context.Context, p *Price, s Settings) string {
	return f.Format(ctx, p, ModeNet, s)
}

// FormatGross renders the gross figure.
func (f *Formatter) FormatGross(ctx context.Context, p *Price, s Settings) string {
	return f.Format(ctx, p, ModeGross, s)
}

// FormatFull renders net and gross together.
func (f *Formatter) FormatFull(ctx context.Context, p *Price, s Settings) string {
	return f.Format(ctx, p, ModeFull, s)
}

// FormatVat renders the VAT value.
func (f *Formatter) FormatVat(ctx context.Context, p *Price, s Settings) string {
	return f.Format(ctx, p, ModeVatValue, s)
}

// FormatAmount snaps the amount to the currency's rounding step and emits it
// with exactly the currency's decimal count. The step division runs at
// 6-digit internal precision so binary drift cannot move the snap.
func FormatAmount(amount decimal.Decimal, c Currency) string {
	if c.RoundingStep.IsPositive() {
		amount = amount.DivRound(c.RoundingStep, stepScale).Round(0).Mul(c.RoundingStep)
	}
	decimals := c.Decimals
	if decimals < 0 {
		decimals = 0
	}
	return amount.StringFixed(decimals)
}

func modeLabel(mode Mode) string {
	switch mode {
	case ModeGross:
		return "Gross"
	case ModeVatValue:
		return "VAT"
	default:
		return "Net"
	}
}

// TextRenderer renders fragments as plain "amount CODE" strings; full mode
// joins its halves with a slash.
type TextRenderer struct{}

// NewTextRenderer returns the default plain-text renderer.
func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

// Render implements Renderer.
func (r *TextRenderer) Render(f *Fragment) string {
	if f == nil {
		return ""
	}
	if f.Mode == ModeFull {
		parts := make([]string, 0, len(f.Children))
		for _, child := range f.Children {
			parts = append(parts, r.Render(child))
		}
		return strings.Join(parts, " / ")
	}

	var b strings.Builder
	if f.Label != "" {
		b.WriteString(f.Label)
		b.WriteString(": ")
	}
	b.WriteString(f.Formatted)
	b.WriteString(" ")
	b.WriteString(f.Currency.ID)
	if f.ShowVatInfo {
		b.WriteString(" (VAT ")
		b.WriteString(f.VatRatePercent.String())
		b.WriteString("%)")
	}
	return b.String()
}
