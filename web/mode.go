package web

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// HeaderHXRequest is the enhancement signal sent by the htmx client.
const HeaderHXRequest = "HX-Request"

// Mode is the client capability tier resolved for one request.
type Mode int

const (
	// ModeStandard is the plain-browser fallback: full-page
	// navigation via POST-redirect-GET.
	ModeStandard Mode = iota
	// ModeEnhanced means the client accepts HTML fragments and
	// out-of-band swaps in place of full pages.
	ModeEnhanced
)

const modeContextKey = "taskboard.mode"

// String returns the mode tag recorded in telemetry events.
func (m Mode) String() string {
	if m == ModeEnhanced {
		return "htmx"
	}
	return "standard"
}

// ClassifyMode resolves the capability mode once per request and
// stores it on the context. The response-shape decision and the
// telemetry record both read the stored value, so the two can never
// drift apart.
func ClassifyMode() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			mode := ModeStandard
			if strings.EqualFold(c.Request().Header.Get(HeaderHXRequest), "true") {
				mode = ModeEnhanced
			}
			c.Set(modeContextKey, mode)
			return next(c)
		}
	}
}

// requestMode returns the mode stored by ClassifyMode, defaulting to
// standard when the middleware did not run.
func requestMode(c echo.Context) Mode {
	if m, ok := c.Get(modeContextKey).(Mode); ok {
		return m
	}
	return ModeStandard
}
