package banner

import (
	"fmt"
	"strings"
)

const (
	layoutErrorTemplateConstant            = "banner layout invalid (width %d, endcap %q): %s"
	nonPositiveWidthMessageConstant        = "width must be positive"
	emptyEndcapMessageConstant             = "endcap must not be empty"
	textOverflowMessageConstant            = "text does not fit between the endcaps"
	defaultLayoutWidthConstant             = 60
	defaultLayoutEndcapConstant            = "|"
	borderCornerConstant                   = "+"
	borderFillConstant                     = "-"
	minimumBorderInteriorConstant          = 0
	paddedFieldTemplateConstant            = "%-*s"
	centeredLineTemplateConstant           = "%s%s%s%s"
	emptyTextConstant                      = ""
	layoutErrorTextPreviewLimitConstant    = 32
	layoutErrorTextPreviewEllipsisConstant = "..."
)

// LayoutError reports a width/endcap/text combination that cannot render.
type LayoutError struct {
	Width   int
	Endcap  string
	Text    string
	Message string
}

// Error describes the malformed layout.
func (layoutError LayoutError) Error() string {
	return fmt.Sprintf(layoutErrorTemplateConstant, layoutError.Width, layoutError.Endcap, layoutError.Message)
}

// Layout fixes the total width and endcap marker shared by every line of a banner.
type Layout struct {
	Width  int
	Endcap string
}

// DefaultLayout returns the sixty-column, pipe-delimited layout used for status banners.
func DefaultLayout() Layout {
	return Layout{Width: defaultLayoutWidthConstant, Endcap: defaultLayoutEndcapConstant}
}

// Validate confirms the layout can render at least an empty line.
func (layout Layout) Validate() error {
	_, validationError := CenterLine(layout.Width, layout.Endcap, emptyTextConstant)
	return validationError
}

// Border renders the top/bottom rule line for the layout: corner markers joined
// by dashes, occupying exactly Width columns like every other banner line.
func (layout Layout) Border() (string, error) {
	if validationError := layout.Validate(); validationError != nil {
		return emptyTextConstant, validationError
	}

	interiorWidth := layout.Width - 2*len(borderCornerConstant)
	if interiorWidth < minimumBorderInteriorConstant {
		interiorWidth = minimumBorderInteriorConstant
	}

	return borderCornerConstant + strings.Repeat(borderFillConstant, interiorWidth) + borderCornerConstant, nil
}

// CenterLine renders text between two endcap markers within a fixed total width.
//
// The text occupies the left span (left-aligned, right-padded) and a blank span
// fills the remaining columns, so endcaps align vertically across consecutive
// calls. The function is pure: identical inputs always produce identical output.
func CenterLine(width int, endcap string, text string) (string, error) {
	if width <= 0 {
		return emptyTextConstant, LayoutError{Width: width, Endcap: endcap, Text: previewText(text), Message: nonPositiveWidthMessageConstant}
	}
	if len(endcap) == 0 {
		return emptyTextConstant, LayoutError{Width: width, Endcap: endcap, Text: previewText(text), Message: emptyEndcapMessageConstant}
	}

	leftSpanWidth := (width + len(text) - 2*len(endcap)) / 2
	rightSpanWidth := width - leftSpanWidth - 2*len(endcap)
	if leftSpanWidth < len(text) || rightSpanWidth < 0 {
		return emptyTextConstant, LayoutError{Width: width, Endcap: endcap, Text: previewText(text), Message: textOverflowMessageConstant}
	}

	textField := fmt.Sprintf(paddedFieldTemplateConstant, leftSpanWidth, text)
	blankField := fmt.Sprintf(paddedFieldTemplateConstant, rightSpanWidth, emptyTextConstant)
	return fmt.Sprintf(centeredLineTemplateConstant, endcap, textField, blankField, endcap), nil
}

func previewText(text string) string {
	if len(text) <= layoutErrorTextPreviewLimitConstant {
		return text
	}
	return text[:layoutErrorTextPreviewLimitConstant] + layoutErrorTextPreviewEllipsisConstant
}
