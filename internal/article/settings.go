// Package article defines the article parameters: option lists, the settings
// record and its defaults.
package article

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownField  = errors.New("unknown settings field")
	ErrUnknownOption = errors.New("option not in list")
)

// Field names one of the five article settings.
type Field int

const (
	FieldFontFamily Field = iota
	FieldFontSize
	FieldFontColor
	FieldBackgroundColor
	FieldContentWidth
)

// Fields lists every field in panel order.
var Fields = []Field{
	FieldFontFamily,
	FieldFontSize,
	FieldFontColor,
	FieldBackgroundColor,
	FieldContentWidth,
}

var fieldNames = []string{"fontFamily", "fontSize", "fontColor", "backgroundColor", "contentWidth"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField maps a field name such as "fontColor" to its Field.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Settings is the full set of article parameters. It is a plain value:
// assigning it copies it, so a draft and the applied state never alias.
type Settings struct {
	FontFamily      OptionValue
	FontSize        OptionValue
	FontColor       OptionValue
	BackgroundColor OptionValue
	ContentWidth    OptionValue
}

// DefaultSettings is the state the page starts with and Reset returns to.
var DefaultSettings = Settings{
	FontFamily:      FontFamilyOptions[0],
	FontSize:        FontSizeOptions[0],
	FontColor:       FontColors[0],
	BackgroundColor: BackgroundColors[0],
	ContentWidth:    ContentWidthOptions[1],
}

// Get returns the value held by field f.
func (s Settings) Get(f Field) OptionValue {
	switch f {
	case FieldFontFamily:
		return s.FontFamily
	case FieldFontSize:
		return s.FontSize
	case FieldFontColor:
		return s.FontColor
	case FieldBackgroundColor:
		return s.BackgroundColor
	case FieldContentWidth:
		return s.ContentWidth
	}
	return OptionValue{}
}

// With returns a copy of s with field f replaced by v.
// The value is not checked against the field's option list.
func (s Settings) With(f Field, v OptionValue) Settings {
	switch f {
	case FieldFontFamily:
		s.FontFamily = v
	case FieldFontSize:
		s.FontSize = v
	case FieldFontColor:
		s.FontColor = v
	case FieldBackgroundColor:
		s.BackgroundColor = v
	case FieldContentWidth:
		s.ContentWidth = v
	}
	return s
}

// Set is With by name: it resolves field and value against the option lists.
func (s Settings) Set(field, value string) (Settings, error) {
	f, err := ParseField(field)
	if err != nil {
		return s, err
	}
	opt, ok := Lookup(f, value)
	if !ok {
		return s, fmt.Errorf("%s=%q: %w", f, value, ErrUnknownOption)
	}
	return s.With(f, opt), nil
}

// Equal compares settings by option identity.
func (s Settings) Equal(other Settings) bool {
	for _, f := range Fields {
		if !s.Get(f).Is(other.Get(f)) {
			return false
		}
	}
	return true
}

// Valid checks that every field holds a member of its option list.
func (s Settings) Valid() error {
	for _, f := range Fields {
		if IndexOf(Options(f), s.Get(f)) < 0 {
			return fmt.Errorf("%s=%q: %w", f, s.Get(f).Value, ErrUnknownOption)
		}
	}
	return nil
}
