package params

import (
	"strconv"
	"strings"
	"time"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/utils"

	"github.com/labstack/echo/v4"
)

// PageParams is the from/size pair every listing accepts.
type PageParams struct {
	From int
	Size int
}

func NewPageParams(from, size int) PageParams {
	return PageParams{From: from, Size: size}
}

// PageIndex is from/size when from > 0, otherwise 0.
func (p PageParams) PageIndex() int {
	if p.From > 0 && p.Size > 0 {
		return p.From / p.Size
	}
	return 0
}

func (p PageParams) Offset() int {
	return p.PageIndex() * p.Size
}

func (p PageParams) Limit() int {
	return p.Size
}

// Page reads from/size from the query string.
func Page(c echo.Context) (PageParams, *errors.AppError) {
	from, err := IntOrDefault(c, "from", constants.DefaultPageFrom)
	if err != nil {
		return PageParams{}, err
	}
	size, err := IntOrDefault(c, "size", constants.DefaultPageSize)
	if err != nil {
		return PageParams{}, err
	}
	if from < 0 {
		return PageParams{}, errors.NewAppError(errors.ErrInvalidInput, "from must be greater than or equal to 0", nil)
	}
	if size <= 0 {
		return PageParams{}, errors.NewAppError(errors.ErrInvalidInput, "size must be greater than 0", nil)
	}
	return NewPageParams(from, size), nil
}

func IntOrDefault(c echo.Context, name string, def int) (int, *errors.AppError) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInvalidInput, "parameter "+name+" must be an integer", err)
	}
	return v, nil
}

// PathID reads a positive int64 path parameter.
func PathID(c echo.Context, name string) (int64, *errors.AppError) {
	id, err := utils.ToInt64(c.Param(name))
	if err != nil || id <= 0 {
		return 0, errors.NewAppError(errors.ErrInvalidInput, "path parameter "+name+" must be a positive integer", err)
	}
	return id, nil
}

// RequiredID reads a positive int64 query parameter that must be present.
func RequiredID(c echo.Context, name string) (int64, *errors.AppError) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, errors.NewAppError(errors.ErrInvalidInput, "parameter "+name+" is required", nil)
	}
	id, err := utils.ToInt64(raw)
	if err != nil || id <= 0 {
		return 0, errors.NewAppError(errors.ErrInvalidInput, "parameter "+name+" must be a positive integer", err)
	}
	return id, nil
}

// IDs reads a repeated or comma separated list of ids; nil when absent.
func IDs(c echo.Context, name string) ([]int64, *errors.AppError) {
	values := c.QueryParams()[name]
	if len(values) == 0 {
		return nil, nil
	}
	ids, err := utils.ToInt64List(values)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "parameter "+name+" must be a list of integers", err)
	}
	return ids, nil
}

func Strings(c echo.Context, name string) []string {
	return utils.SplitValues(c.QueryParams()[name])
}

// OptionalBool returns nil when the parameter is absent.
func OptionalBool(c echo.Context, name string) (*bool, *errors.AppError) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "parameter "+name+" must be a boolean", err)
	}
	return &v, nil
}

func RequiredBool(c echo.Context, name string) (bool, *errors.AppError) {
	v, err := OptionalBool(c, name)
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, errors.NewAppError(errors.ErrInvalidInput, "parameter "+name+" is required", nil)
	}
	return *v, nil
}

// OptionalTime parses a "yyyy-MM-dd HH:mm:ss" parameter; nil when absent.
func OptionalTime(c echo.Context, name string) (*time.Time, *errors.AppError) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDateTime(raw)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			"parameter "+name+" must have format "+constants.DateTimeLayout, err)
	}
	return &t, nil
}
