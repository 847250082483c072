package banner

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

const (
	timestampLayoutConstant              = "2006-01-02 15:04:05"
	writerNotConfiguredMessageConstant   = "banner writer not configured"
	unsupportedColorModeTemplateConstant = "unsupported color mode: %s"
	bannerWriteErrorTemplateConstant     = "unable to write banner line: %w"
	colorModeEnabledStringConstant       = "enabled"
	colorModeDisabledStringConstant      = "disabled"
)

// ErrWriterNotConfigured indicates a printer was constructed without an output writer.
var ErrWriterNotConfigured = errors.New(writerNotConfiguredMessageConstant)

// ColorMode controls whether banner lines are tinted with ANSI colors.
type ColorMode string

// Recognized color modes.
const (
	ColorModeEnabled  ColorMode = ColorMode(colorModeEnabledStringConstant)
	ColorModeDisabled ColorMode = ColorMode(colorModeDisabledStringConstant)
)

// ParseColorMode normalizes a configured color mode value.
func ParseColorMode(candidate string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(candidate)) {
	case colorModeEnabledStringConstant:
		return ColorModeEnabled, nil
	case colorModeDisabledStringConstant:
		return ColorModeDisabled, nil
	default:
		return ColorMode(emptyTextConstant), fmt.Errorf(unsupportedColorModeTemplateConstant, candidate)
	}
}

// Tone selects the tint applied to a banner when color output is enabled.
type Tone string

// Supported banner tones.
const (
	ToneNeutral Tone = Tone("neutral")
	ToneSuccess Tone = Tone("success")
	ToneFailure Tone = Tone("failure")
)

// Clock supplies the timestamp rendered inside each banner.
type Clock func() time.Time

// PrinterOptions configures a banner printer.
type PrinterOptions struct {
	Writer    io.Writer
	Layout    Layout
	Clock     Clock
	ColorMode ColorMode
}

// Printer renders bordered status banners onto a single output stream.
type Printer struct {
	writer    io.Writer
	layout    Layout
	clock     Clock
	colorMode ColorMode
}

// NewPrinter validates the supplied options and constructs a Printer.
func NewPrinter(options PrinterOptions) (*Printer, error) {
	if options.Writer == nil {
		return nil, ErrWriterNotConfigured
	}

	layout := options.Layout
	if layout.Width == 0 && len(layout.Endcap) == 0 {
		layout = DefaultLayout()
	}
	if validationError := layout.Validate(); validationError != nil {
		return nil, validationError
	}

	clock := options.Clock
	if clock == nil {
		clock = time.Now
	}

	colorMode := options.ColorMode
	if len(colorMode) == 0 {
		colorMode = ColorModeDisabled
	}

	return &Printer{writer: options.Writer, layout: layout, clock: clock, colorMode: colorMode}, nil
}

// PrintBanner emits a five-line banner: border, the text line, a blank line,
// the current local timestamp, and the closing border.
func (printer *Printer) PrintBanner(text string) error {
	return printer.printBannerLines(ToneNeutral, text)
}

// PrintBanner2Lines emits a six-line banner carrying two text lines before the
// blank and timestamp lines.
func (printer *Printer) PrintBanner2Lines(firstLine string, secondLine string) error {
	return printer.printBannerLines(ToneNeutral, firstLine, secondLine)
}

// PrintBannerWithTone renders the single-line banner tinted for the supplied tone.
func (printer *Printer) PrintBannerWithTone(tone Tone, text string) error {
	return printer.printBannerLines(tone, text)
}

// PrintBanner2LinesWithTone renders the two-line banner tinted for the supplied tone.
func (printer *Printer) PrintBanner2LinesWithTone(tone Tone, firstLine string, secondLine string) error {
	return printer.printBannerLines(tone, firstLine, secondLine)
}

func (printer *Printer) printBannerLines(tone Tone, textLines ...string) error {
	borderLine, borderError := printer.layout.Border()
	if borderError != nil {
		return borderError
	}

	bannerLines := []string{borderLine}
	for _, textLine := range textLines {
		centeredLine, centerError := CenterLine(printer.layout.Width, printer.layout.Endcap, textLine)
		if centerError != nil {
			return centerError
		}
		bannerLines = append(bannerLines, centeredLine)
	}

	blankLine, blankError := CenterLine(printer.layout.Width, printer.layout.Endcap, emptyTextConstant)
	if blankError != nil {
		return blankError
	}
	bannerLines = append(bannerLines, blankLine)

	timestampText := printer.clock().Format(timestampLayoutConstant)
	timestampLine, timestampError := CenterLine(printer.layout.Width, printer.layout.Endcap, timestampText)
	if timestampError != nil {
		return timestampError
	}
	bannerLines = append(bannerLines, timestampLine, borderLine)

	tintLine := printer.toneSprint(tone)
	for _, bannerLine := range bannerLines {
		if _, writeError := fmt.Fprintln(printer.writer, tintLine(bannerLine)); writeError != nil {
			return fmt.Errorf(bannerWriteErrorTemplateConstant, writeError)
		}
	}

	return nil
}

func (printer *Printer) toneSprint(tone Tone) func(...any) string {
	if printer.colorMode != ColorModeEnabled {
		return fmt.Sprint
	}

	var toneColor *color.Color
	switch tone {
	case ToneSuccess:
		toneColor = color.New(color.FgGreen, color.Bold)
	case ToneFailure:
		toneColor = color.New(color.FgRed, color.Bold)
	default:
		return fmt.Sprint
	}

	toneColor.EnableColor()
	return toneColor.Sprint
}
