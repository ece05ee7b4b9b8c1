// Package styles defines visual styles for SVG tree drawings.
//
// # Overview
//
// The SVG drawer delegates every element to a [Style]:
//
//   - [Simple]: circles with centered labels, highlighted fill for emphasis
//   - [Text]: bare monospace labels, bold for emphasis
//
// Styles are looked up by name with [ByName]:
//
//	s, err := styles.ByName("text")
//	d := sink.NewSVG(sink.WithStyle(s))
//
// # Creating Custom Styles
//
// Implement [Style] and write SVG elements into the provided buffer. Labels
// must go through [EscapeXML].
package styles
