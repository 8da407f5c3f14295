// Package panel holds the user-facing options of the cluster panel and the
// host-side services they rely on: named color resolution and option files.
//
// # Options
//
// [Options] mirrors what a dashboard user can configure:
//
//	color = "semi-dark-blue"   # palette name, hex or CSS color
//	show_series_count = true
//	text = "Service mesh"
//	width = 800
//	height = 600
//
// [LoadOptions] reads such a TOML file, [Options.SetDefaults] fills gaps and
// [Options.Validate] enforces the constraints declared in struct tags.
//
// # Colors
//
// [ResolveColor] maps palette names ("red", "dark-red", "semi-dark-red",
// "light-red", "super-light-red" and the same shades for orange, yellow,
// green, blue and purple) to hex values. Hex input is normalized; any other
// string is returned unchanged so CSS color keywords keep working.
package panel
