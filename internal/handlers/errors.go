package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders every error as {"message": ...}. Errors that are not *echo.HTTPError
// are logged and answered with a generic 500 so store details never reach the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var message interface{} = "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = he.Message
		if he.Internal != nil {
			log.Printf("%s %s: %v", c.Request().Method, c.Path(), he.Internal)
		}
		if e, ok := message.(error); ok {
			message = e.Error()
		}
	} else {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"message": message})
	}
	if err != nil {
		log.Printf("failed to write error response: %v", err)
	}
}

// bindRequest binds the body into req and runs the registered validator
func bindRequest(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

// notFoundOr maps ErrNotFound to a 404 with the given message and passes other errors through
func notFoundOr(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, message)
	}
	return err
}

// pathParam returns the unescaped path parameter
func pathParam(c echo.Context, name string) string {
	value := c.Param(name)
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

// Write acknowledgements, shaped like the MongoDB driver results the front-end expects
type insertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
	ID           int64       `json:"id,omitempty"`
}

type updateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type deleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func inserted(objectID interface{}, id int64) insertResult {
	return insertResult{Acknowledged: true, InsertedID: objectID, ID: id}
}

func updatedOne() updateResult {
	return updateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}
}

func deletedOne() deleteResult {
	return deleteResult{Acknowledged: true, DeletedCount: 1}
}
