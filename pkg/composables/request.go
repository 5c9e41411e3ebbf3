package composables

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ce1sus/ce1sus-console/pkg/constants"
	"github.com/ce1sus/ce1sus-console/pkg/shared"
	"github.com/ce1sus/ce1sus-console/pkg/types"
)

type Params struct {
	IP        string
	UserAgent string
	Request   *http.Request
	Writer    http.ResponseWriter
}

func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseIP returns the client address resolved by the RequestParams middleware.
func UseIP(ctx context.Context) (string, bool) {
	params, ok := UseParams(ctx)
	if !ok {
		return "", false
	}
	return params.IP, true
}

// UseLogger returns the request scoped logger. Outside of a request it falls
// back to the standard logrus logger.
func UseLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// TryUsePageCtx fetches the page context set by WithPageContext.
func TryUsePageCtx(ctx context.Context) (*types.PageContext, bool) {
	pageCtx, ok := ctx.Value(constants.PageContext).(*types.PageContext)
	return pageCtx, ok
}

func WithPageCtx(ctx context.Context, pageCtx *types.PageContext) context.Context {
	return context.WithValue(ctx, constants.PageContext, pageCtx)
}

// UseForm decodes the posted form into v using the "form" struct tags.
func UseForm[T comparable](v T, r *http.Request) (T, error) {
	if err := r.ParseForm(); err != nil {
		return v, err
	}
	return v, shared.Decoder.Decode(v, r.Form)
}

// GetLastQueryParam returns the last occurrence of a query parameter, so a
// pager link appended to an existing query string wins.
func GetLastQueryParam(r *http.Request, key string) string {
	values := r.URL.Query()[key]
	if len(values) > 0 {
		return values[len(values)-1]
	}
	return ""
}
