package article

// OptionValue is one selectable choice of a settings field.
// Two options are the same choice when their Value matches.
type OptionValue struct {
	Value     string
	Label     string
	ClassName string
}

// Is reports whether o and other denote the same choice.
func (o OptionValue) Is(other OptionValue) bool {
	return o.Value == other.Value
}

// Font families. Terminal rendering maps each family to text attributes
// (see ui.fontFaceFor).
var FontFamilyOptions = []OptionValue{
	{Value: "open-sans", Label: "Open Sans", ClassName: "open-sans"},
	{Value: "ubuntu", Label: "Ubuntu", ClassName: "ubuntu"},
	{Value: "cormorant-garamond", Label: "Cormorant Garamond", ClassName: "cormorant-garamond"},
	{Value: "days-one", Label: "Days One", ClassName: "days-one"},
	{Value: "merriweather", Label: "Merriweather", ClassName: "merriweather"},
}

// FontSizeOptions are offered as a radio group.
var FontSizeOptions = []OptionValue{
	{Value: "18", Label: "18px", ClassName: "font-size-18"},
	{Value: "25", Label: "25px", ClassName: "font-size-25"},
	{Value: "38", Label: "38px", ClassName: "font-size-38"},
}

var FontColors = []OptionValue{
	{Value: "black", Label: "Black", ClassName: "font-black"},
	{Value: "white", Label: "White", ClassName: "font-white"},
	{Value: "gray", Label: "Gray", ClassName: "font-gray"},
	{Value: "pink", Label: "Pink", ClassName: "font-pink"},
	{Value: "fuchsia", Label: "Fuchsia", ClassName: "font-fuchsia"},
	{Value: "red", Label: "Red", ClassName: "font-red"},
	{Value: "yellow", Label: "Yellow", ClassName: "font-yellow"},
	{Value: "green", Label: "Green", ClassName: "font-green"},
	{Value: "blue", Label: "Blue", ClassName: "font-blue"},
	{Value: "purple", Label: "Purple", ClassName: "font-purple"},
}

var BackgroundColors = []OptionValue{
	{Value: "white", Label: "White", ClassName: "bg-white"},
	{Value: "dark", Label: "Dark", ClassName: "bg-dark"},
	{Value: "gray", Label: "Gray", ClassName: "bg-gray"},
	{Value: "pink", Label: "Pink", ClassName: "bg-pink"},
	{Value: "yellow", Label: "Yellow", ClassName: "bg-yellow"},
	{Value: "green", Label: "Green", ClassName: "bg-green"},
	{Value: "blue", Label: "Blue", ClassName: "bg-blue"},
	{Value: "purple", Label: "Purple", ClassName: "bg-purple"},
}

var ContentWidthOptions = []OptionValue{
	{Value: "grid-wide", Label: "Wide", ClassName: "width-wide"},
	{Value: "grid-fixed", Label: "Narrow", ClassName: "width-narrow"},
}

// palette maps color option values to hex codes.
var palette = map[string]string{
	"black":   "#000000",
	"white":   "#FFFFFF",
	"gray":    "#C4C4C4",
	"dark":    "#1E1E1E",
	"pink":    "#FEAFE8",
	"fuchsia": "#FD24AF",
	"red":     "#FD2400",
	"yellow":  "#FFC802",
	"green":   "#80D994",
	"blue":    "#6FC1FD",
	"purple":  "#5F3ECE",
}

// ColorHex returns the hex code for a font or background color value,
// or "" when value is not a color.
func ColorHex(value string) string {
	return palette[value]
}

// Options returns the fixed option list for a field, nil for an unknown field.
func Options(f Field) []OptionValue {
	switch f {
	case FieldFontFamily:
		return FontFamilyOptions
	case FieldFontSize:
		return FontSizeOptions
	case FieldFontColor:
		return FontColors
	case FieldBackgroundColor:
		return BackgroundColors
	case FieldContentWidth:
		return ContentWidthOptions
	}
	return nil
}

// IndexOf returns the position of v in options, or -1.
func IndexOf(options []OptionValue, v OptionValue) int {
	for i, opt := range options {
		if opt.Is(v) {
			return i
		}
	}
	return -1
}

// Lookup finds the option of field f with the given value.
func Lookup(f Field, value string) (OptionValue, bool) {
	for _, opt := range Options(f) {
		if opt.Value == value {
			return opt, true
		}
	}
	return OptionValue{}, false
}
