package style

// unitlessNumbers lists properties whose numeric values take no unit.
var unitlessNumbers = map[string]struct{}{
	"animationIterationCount": {},
	"aspectRatio":             {},
	"borderImageOutset":       {},
	"borderImageSlice":        {},
	"borderImageWidth":        {},
	"boxFlex":                 {},
	"boxFlexGroup":            {},
	"boxOrdinalGroup":         {},
	"columnCount":             {},
	"columns":                 {},
	"flex":                    {},
	"flexGrow":                {},
	"flexPositive":            {},
	"flexShrink":              {},
	"flexNegative":            {},
	"flexOrder":               {},
	"gridArea":                {},
	"gridRow":                 {},
	"gridRowEnd":              {},
	"gridRowSpan":             {},
	"gridRowStart":            {},
	"gridColumn":              {},
	"gridColumnEnd":           {},
	"gridColumnSpan":          {},
	"gridColumnStart":         {},
	"fontWeight":              {},
	"lineClamp":               {},
	"lineHeight":              {},
	"opacity":                 {},
	"order":                   {},
	"orphans":                 {},
	"scale":                   {},
	"tabSize":                 {},
	"widows":                  {},
	"zIndex":                  {},
	"zoom":                    {},

	// SVG
	"fillOpacity":      {},
	"floodOpacity":     {},
	"stopOpacity":      {},
	"strokeDasharray":  {},
	"strokeDashoffset": {},
	"strokeMiterlimit": {},
	"strokeOpacity":    {},
	"strokeWidth":      {},

	// вендорные префиксы
	"MozAnimationIterationCount":    {},
	"MozBoxFlex":                    {},
	"MozBoxFlexGroup":               {},
	"MozLineClamp":                  {},
	"msAnimationIterationCount":     {},
	"msFlex":                        {},
	"msZoom":                        {},
	"msFlexGrow":                    {},
	"msFlexNegative":                {},
	"msFlexOrder":                   {},
	"msFlexPositive":                {},
	"msFlexShrink":                  {},
	"msGridColumn":                  {},
	"msGridColumnSpan":              {},
	"msGridRow":                     {},
	"msGridRowSpan":                 {},
	"WebkitAnimationIterationCount": {},
	"WebkitBoxFlex":                 {},
	"WebKitBoxFlexGroup":            {},
	"WebkitBoxOrdinalGroup":         {},
	"WebkitColumnCount":             {},
	"WebkitColumns":                 {},
	"WebkitFlex":                    {},
	"WebkitFlexGrow":                {},
	"WebkitFlexPositive":            {},
	"WebkitFlexShrink":              {},
	"WebkitLineClamp":               {},
}

// IsUnitless reports whether numbers for key are printed without "px".
func IsUnitless(key string) bool {
	if len(key) >= 2 && key[:2] == "--" {
		return true
	}
	_, ok := unitlessNumbers[key]
	return ok
}
