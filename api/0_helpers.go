package api

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"
	"github.com/go-json-experiment/json"

	"github.com/fulldump/multiindex/api/apiordersv1"
	"github.com/fulldump/multiindex/collection"
	"github.com/fulldump/multiindex/service"
)

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.MarshalWrite(w, p)
}

// status picks the HTTP status and a human description for err.
func status(ctx context.Context, err error) (int, string) {

	var uniquenessError *collection.UniquenessError
	var syntaxError *stdjson.SyntaxError
	var typeError *stdjson.UnmarshalTypeError

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "user is not authenticated"
	case err == box.ErrResourceNotFound:
		return http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String())
	case err == box.ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method)
	case errors.Is(err, service.ErrorOrderNotFound):
		return http.StatusNotFound, "order not found"
	case errors.As(err, &uniquenessError):
		return http.StatusConflict, fmt.Sprintf("another order already has %s '%v'", uniquenessError.Index, uniquenessError.Key)
	case errors.Is(err, service.ErrorOrderConflict):
		return http.StatusConflict, "the order collides with another one"
	case errors.Is(err, service.ErrorIndexNotFound), errors.Is(err, service.ErrorReverseNotKnown):
		return http.StatusBadRequest, "bad index"
	case errors.Is(err, apiordersv1.ErrBadRequest):
		return http.StatusBadRequest, "bad request"
	case errors.As(err, &syntaxError), errors.As(err, &typeError):
		return http.StatusBadRequest, "Malformed JSON"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}

		code, description := status(ctx, err)

		w := box.GetResponse(ctx)
		w.WriteHeader(code)
		PrettyError{
			Message:     err.Error(),
			Description: description,
		}.MarshalTo(w)
	}
}
