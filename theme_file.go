package piemenu

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// themeFile is the TOML form of a Theme. Every field is optional; unset
// fields keep the value of the base theme.
//
//	delay = "350ms"
//	left_click_shows_menu = true
//	child_bounce_curve = "decelerate"
//	overlay_style = "around"
//	overlay_color = "#000000b4"
type themeFile struct {
	Delay               *textDuration `toml:"delay"`
	LeftClickShowsMenu  *bool         `toml:"left_click_shows_menu"`
	RightClickShowsMenu *bool         `toml:"right_click_shows_menu"`

	ChildBounceEnabled      *bool         `toml:"child_bounce_enabled"`
	ChildBounceDuration     *textDuration `toml:"child_bounce_duration"`
	ChildBounceFactor       *float32      `toml:"child_bounce_factor"`
	ChildBounceCurve        *string       `toml:"child_bounce_curve"`
	ChildBounceReverseCurve *string       `toml:"child_bounce_reverse_curve"`

	FadeDuration *textDuration `toml:"fade_duration"`
	FadeCurve    *string       `toml:"fade_curve"`
	OverlayStyle *string       `toml:"overlay_style"`
	OverlayColor *textColor    `toml:"overlay_color"`

	ChildOpacityOnButtonHover *float32      `toml:"child_opacity_on_button_hover"`
	HoverDuration             *textDuration `toml:"hover_duration"`

	Radius     *float32 `toml:"radius"`
	ButtonSize *float32 `toml:"button_size"`
	Spacing    *float64 `toml:"spacing"`
}

// textDuration decodes "150ms"-style strings.
type textDuration struct {
	time.Duration
}

func (d *textDuration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// textColor decodes "#rrggbb" and "#rrggbbaa" strings.
type textColor struct {
	rgba uint32
}

func (c *textColor) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "#")
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("color %q: %w", text, err)
	}
	c.rgba = RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v))
	return nil
}

// LoadTheme reads a TOML theme file on top of DefaultTheme.
func LoadTheme(path string) (Theme, error) {
	var f themeFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme %s: %w", path, err)
	}
	t, err := f.apply(DefaultTheme(), md)
	if err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

// DecodeTheme parses TOML theme data on top of base.
func DecodeTheme(data string, base Theme) (Theme, error) {
	var f themeFile
	md, err := toml.Decode(data, &f)
	if err != nil {
		return Theme{}, fmt.Errorf("decode theme: %w", err)
	}
	return f.apply(base, md)
}

func (f *themeFile) apply(t Theme, md toml.MetaData) (Theme, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Theme{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if f.Delay != nil {
		t.Delay = f.Delay.Duration
	}
	if f.LeftClickShowsMenu != nil {
		t.LeftClickShowsMenu = *f.LeftClickShowsMenu
	}
	if f.RightClickShowsMenu != nil {
		t.RightClickShowsMenu = *f.RightClickShowsMenu
	}
	if f.ChildBounceEnabled != nil {
		t.ChildBounceEnabled = *f.ChildBounceEnabled
	}
	if f.ChildBounceDuration != nil {
		t.ChildBounceDuration = f.ChildBounceDuration.Duration
	}
	if f.ChildBounceFactor != nil {
		t.ChildBounceFactor = *f.ChildBounceFactor
	}
	if err := setCurve(&t.ChildBounceCurve, f.ChildBounceCurve); err != nil {
		return Theme{}, fmt.Errorf("child_bounce_curve: %w", err)
	}
	if err := setCurve(&t.ChildBounceReverseCurve, f.ChildBounceReverseCurve); err != nil {
		return Theme{}, fmt.Errorf("child_bounce_reverse_curve: %w", err)
	}
	if f.FadeDuration != nil {
		t.FadeDuration = f.FadeDuration.Duration
	}
	if err := setCurve(&t.FadeCurve, f.FadeCurve); err != nil {
		return Theme{}, fmt.Errorf("fade_curve: %w", err)
	}
	if f.OverlayStyle != nil {
		style, err := ParseOverlayStyle(*f.OverlayStyle)
		if err != nil {
			return Theme{}, fmt.Errorf("overlay_style: %w", err)
		}
		t.OverlayStyle = style
	}
	if f.OverlayColor != nil {
		t.OverlayColor = f.OverlayColor.rgba
	}
	if f.ChildOpacityOnButtonHover != nil {
		t.ChildOpacityOnButtonHover = clampf(*f.ChildOpacityOnButtonHover, 0, 1)
	}
	if f.HoverDuration != nil {
		t.HoverDuration = f.HoverDuration.Duration
	}
	if f.Radius != nil {
		t.Radius = *f.Radius
	}
	if f.ButtonSize != nil {
		t.ButtonSize = *f.ButtonSize
	}
	if f.Spacing != nil {
		t.Spacing = *f.Spacing
	}
	return t, nil
}

func setCurve(dst *Curve, name *string) error {
	if name == nil {
		return nil
	}
	c, err := CurveByName(*name)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}
