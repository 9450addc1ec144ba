package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/render"
)

// statusView feeds the out-of-band status element.
type statusView struct {
	Message string
}

// response is a fully resolved response shape, computed before
// telemetry is recorded so the emitted status always matches what is
// sent on the wire.
type response struct {
	status   int
	body     string // HTML body; unused for redirects
	location string // redirect target; empty for HTML responses
}

func (r response) send(c echo.Context) error {
	if r.location != "" {
		return c.Redirect(r.status, r.location)
	}
	return c.HTML(r.status, r.body)
}

// dispatcher applies the (mode, outcome) decision table: enhanced
// clients get fragments with an out-of-band status element, standard
// clients get POST-redirect-GET navigation.
type dispatcher struct {
	render Renderer
}

// success resolves the success row. status is the enhanced-mode code
// (201 for create, 200 for edit and delete); fragment is the element
// markup, empty when the client should remove the element (delete);
// redirect is the standard-mode target, empty when standard mode
// re-renders the fragment instead (edit).
func (d dispatcher) success(mode Mode, status int, fragment, message, redirect string) (response, error) {
	if mode == ModeEnhanced {
		oob, err := d.render.Render(render.ViewStatus, statusView{Message: message})
		if err != nil {
			return response{}, err
		}
		return response{status: status, body: fragment + oob}, nil
	}
	if redirect != "" {
		return response{status: http.StatusFound, location: redirect}, nil
	}
	return response{status: http.StatusOK, body: fragment}, nil
}

// failure resolves the error row: a 400 fragment carrying only the
// out-of-band status element, or a redirect to the list page flagged
// with the error in the query string.
func (d dispatcher) failure(mode Mode, message, flag string) (response, error) {
	if mode == ModeEnhanced {
		oob, err := d.render.Render(render.ViewStatus, statusView{Message: message})
		if err != nil {
			return response{}, err
		}
		return response{status: http.StatusBadRequest, body: oob}, nil
	}
	return response{status: http.StatusFound, location: tasksPath + "?error=" + flag}, nil
}
