// Package banner renders fixed-width, endcap-aligned status banners.
//
// CenterLine lays a single line of text between two endcap markers so the
// markers align vertically across consecutive lines, and Printer composes
// bordered banner blocks (message lines, a blank spacer, and a timestamp)
// with optional ANSI tinting for success and failure output.
package banner
