package params

import "github.com/labstack/echo/v4"

// QueryParams holds common pagination query parameters.
type QueryParams struct {
	PageNumber int    `query:"page_number"`
	PageSize   int    `query:"page_size"`
	Search     string `query:"search"`
}

// FromContext binds pagination params from the request, applying defaults.
func FromContext(c echo.Context) QueryParams {
	p := QueryParams{}
	_ = c.Bind(&p)
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	return p
}
