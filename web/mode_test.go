package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestClassifyModeMatrix(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   Mode
	}{
		{"lowercase true", "true", ModeEnhanced},
		{"uppercase true", "TRUE", ModeEnhanced},
		{"mixed case", "True", ModeEnhanced},
		{"absent", "", ModeStandard},
		{"false", "false", ModeStandard},
		{"other value", "1", ModeStandard},
	}

	e := echo.New()
	e.Use(ClassifyMode())
	var got Mode
	e.GET("/probe", func(c echo.Context) error {
		got = requestMode(c)
		return c.NoContent(http.StatusOK)
	})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tc.header != "" {
				req.Header.Set(HeaderHXRequest, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if got != tc.want {
				t.Fatalf("header %q classified as %s, want %s", tc.header, got, tc.want)
			}
		})
	}
}

func TestRequestModeDefaultsToStandard(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderHXRequest, "true")
	c := e.NewContext(req, httptest.NewRecorder())

	// Without the middleware there is no stored classification.
	if requestMode(c) != ModeStandard {
		t.Fatal("expected standard mode when middleware did not run")
	}
}

func TestModeString(t *testing.T) {
	if ModeEnhanced.String() != "htmx" {
		t.Fatalf("enhanced mode tag: %s", ModeEnhanced.String())
	}
	if ModeStandard.String() != "standard" {
		t.Fatalf("standard mode tag: %s", ModeStandard.String())
	}
}
