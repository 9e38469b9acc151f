package rpcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"

	errs "github.com/lopatinaanna/binarytree/errors"
	"github.com/lopatinaanna/binarytree/logs"
	stderr "github.com/pkg/errors"
	"github.com/rs/cors"
)

const HttpHeaderTraceID = "X-TRACE-ID"

type HttpPreProcessorResult struct {
	Request  *http.Request
	Continue bool
}

// HttpPreProcessor runs before the handler of a route and may answer
// the request itself
type HttpPreProcessor interface {
	// ServeHTTP is similar to http.Handler. Continue is false in the result
	// when the pre processor already wrote the response. The request in the
	// result is the one the next handler should process.
	ServeHTTP(w http.ResponseWriter, req *http.Request) (HttpPreProcessorResult, error)
}

// HttpMiddleware handles the request of a route. The value it returns is
// encoded by the route
type HttpMiddleware interface {
	ServeHTTP(req *http.Request) (interface{}, error)
}

// HttpError is an error answered with an http status
type HttpError struct {
	// Cause is the error behind the status, its code is sent to the client
	Cause error

	StatusCode int

	// Message is the description sent to the client
	Message string
}

// Log implementation of logs.Loggable
func (e *HttpError) Log(fields logs.Fields) {
	fields.Add("status_code", e.StatusCode)

	if e.Cause == nil {
		return
	}

	var cause *errs.Error
	if errors.As(e.Cause, &cause) {
		cause.Log(fields)
	}
	fields.Add("description", e.Cause.Error())
}

func (e *HttpError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s with status code %d", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s with status code %d", e.Cause.Error(), e.StatusCode)
}

// Unwrap returns the cause of the error
func (e *HttpError) Unwrap() error {
	return e.Cause
}

// MakeHttpError creates an error answered with statusCode
func MakeHttpError(ctx context.Context, err error, statusCode int, msg string) *HttpError {
	return &HttpError{
		Cause:      err,
		StatusCode: statusCode,
		Message:    msg,
	}
}

// HttpBadRequest returns an HTTP bad request error
func HttpBadRequest(ctx context.Context, err error) *HttpError {
	return MakeHttpError(ctx, err, http.StatusBadRequest, "Bad Request")
}

// HttpNotFound returns an HTTP not found error
func HttpNotFound(ctx context.Context, err error) *HttpError {
	return MakeHttpError(ctx, err, http.StatusNotFound, "Not Found")
}

// HttpMethodNotAllowed returns an HTTP method not allowed error
func HttpMethodNotAllowed(ctx context.Context, err error) *HttpError {
	return MakeHttpError(ctx, err, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// HttpInternalServerError returns an HTTP internal server error
func HttpInternalServerError(ctx context.Context, err error) *HttpError {
	return MakeHttpError(ctx, err, http.StatusInternalServerError, "Internal Server Error")
}

// MethodHandlers maps methods to the middleware handling them
type MethodHandlers map[string]HttpMiddleware

// Add sets the middleware for method
func (h MethodHandlers) Add(method string, middleware HttpMiddleware) {
	h[method] = middleware
}

// writeError writes the status of err and, if it has a cause, a body
// describing it. It returns the error that prevented writing the body
func writeError(res http.ResponseWriter, req *http.Request, encoder Encoder, err *HttpError) error {
	res.Header().Add(HttpHeaderTraceID, strconv.FormatInt(logs.GetTraceID(req.Context()), 10))
	res.WriteHeader(err.StatusCode)

	if err.Cause == nil {
		return nil
	}

	return encoder.Encode(res, errs.Error{
		ErrorCode:   errs.Code(err.Cause),
		Description: err.Message,
	})
}

// HttpRoute serves a path, dispatching on the method of the request
type HttpRoute struct {
	logger        logs.Logger
	handlers      map[string]HttpMiddleware
	preProcessors []HttpPreProcessor
	encoder       Encoder
}

// HttpRouteProps configures an HttpRoute
type HttpRouteProps struct {
	Logger        logs.Logger
	Encoder       Encoder
	Handlers      MethodHandlers
	PreProcessors []HttpPreProcessor
}

// NewHttpRoute creates a route
func NewHttpRoute(props HttpRouteProps) *HttpRoute {
	return &HttpRoute{
		logger:        props.Logger,
		handlers:      props.Handlers,
		preProcessors: props.PreProcessors,
		encoder:       props.Encoder,
	}
}

func (h *HttpRoute) reportSuccess(
	res http.ResponseWriter,
	req *http.Request,
	body interface{},
) (int, error) {
	res.Header().Add(HttpHeaderTraceID, strconv.FormatInt(logs.GetTraceID(req.Context()), 10))

	if body == nil {
		res.WriteHeader(http.StatusNoContent)
		return http.StatusNoContent, nil
	}

	if err := h.encoder.Encode(res, body); err != nil {
		res.WriteHeader(http.StatusInternalServerError)
		h.logger.Warn(req.Context(), "failed to encode response", logs.MapFields{
			"path":      req.URL.EscapedPath(),
			"method":    req.Method,
			"call_type": "HttpRequestHandleSuccess",
			"err":       err.Error(),
		})
		return 0, err
	}

	return http.StatusOK, nil
}

// HttpRoute implementation of http.Handler
func (h *HttpRoute) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	fields := logs.MapFields{
		"path":   req.URL.Path,
		"method": req.Method,
	}
	h.logger.Debug(req.Context(), "handle request", fields)

	result := HttpPreProcessorResult{Continue: true, Request: req}
	var err error
	for _, preProcessor := range h.preProcessors {
		result, err = preProcessor.ServeHTTP(res, result.Request)
		if err != nil {
			h.logger.Warn(req.Context(), "pre processor failed", fields, logs.MapFields{
				"err": err.Error(),
			})
			return
		}

		if !result.Continue {
			return
		}
	}

	status, err := h.serveHTTP(res, result.Request)
	outcome := logs.MapFields{"status": status}
	if err != nil {
		outcome["err"] = err.Error()
	}

	switch {
	case status >= http.StatusOK && status <= 299:
		h.logger.Info(req.Context(), "success", fields, outcome)
	case status > 299 && status < 400:
		h.logger.Debug(req.Context(), "redirect", fields, outcome)
	case status >= 400:
		h.logger.Warn(req.Context(), "error", fields, outcome)
	default:
		h.logger.Debug(req.Context(), "logic", fields, outcome)
	}
}

func (h *HttpRoute) serveHTTP(res http.ResponseWriter, req *http.Request) (int, error) {
	handler, ok := h.handlers[req.Method]
	if !ok {
		return h.reportError(res, req, HttpMethodNotAllowed(req.Context(), nil))
	}

	v, err := handler.ServeHTTP(req)
	if err != nil {
		return h.reportError(res, req, toHttpError(req.Context(), err))
	}

	return h.reportSuccess(res, req, v)
}

func (h *HttpRoute) reportError(res http.ResponseWriter, req *http.Request, err *HttpError) (int, error) {
	if eerr := writeError(res, req, h.encoder, err); eerr != nil {
		h.logger.Warn(req.Context(), "failed to encode error response to response writer", logs.MapFields{
			"path":      req.URL.EscapedPath(),
			"method":    req.Method,
			"call_type": "HttpEncodeErrorError",
		}, &errs.Error{Description: eerr.Error()})
		return 0, err
	}

	return err.StatusCode, err
}

// toHttpError keeps err if it already is an *HttpError and considers
// any other error an internal server error
func toHttpError(ctx context.Context, err error) *HttpError {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	return HttpInternalServerError(ctx, err)
}

// HttpRouter dispatches requests to the route of their path. It adds a
// trace id to every request and turns panics into internal errors
type HttpRouter struct {
	encoder Encoder
	mux     map[string]*HttpRoute
	logger  logs.Logger
}

// HttpRouter implementation of http.Handler
func (h *HttpRouter) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	traceID := ParseTraceID(req.Header.Get(HttpHeaderTraceID))
	req = req.WithContext(logs.WithTraceID(req.Context(), traceID))
	fields := logs.MapFields{
		"path":   req.URL.EscapedPath(),
		"method": req.Method,
	}

	h.logger.Debug(req.Context(), "", fields, logs.MapFields{
		"call_type": "HttpRequestHandleAttempt",
	})

	defer func() {
		if r := recover(); r != nil {
			var err error
			stacktrace := debug.Stack()

			switch x := r.(type) {
			case string:
				err = stderr.New(x)
			case error:
				err = x
			default:
				err = fmt.Errorf("unknown panic %+v", r)
			}

			h.logger.Warn(req.Context(), "unexpected panic caught", fields, logs.MapFields{
				"call_type":  "HttpRequestHandleFailure",
				"err":        err.Error(),
				"stacktrace": string(stacktrace),
			})
			// the error caught is internal and is not exposed to
			// the client, which gets a generic error instead
			h.reportError(res, req, HttpInternalServerError(
				req.Context(), stderr.New("unexpected error occurred")))
		}
	}()

	route, ok := h.mux[req.URL.Path]
	if !ok {
		h.reportError(res, req, &HttpError{StatusCode: http.StatusNotFound})
		return
	}

	route.ServeHTTP(res, req)
}

func (h *HttpRouter) reportError(res http.ResponseWriter, req *http.Request, err *HttpError) {
	fields := logs.MapFields{
		"path":      req.URL.EscapedPath(),
		"method":    req.Method,
		"call_type": "HttpRequestHandleFailure",
	}

	if eerr := writeError(res, req, h.encoder, err); eerr != nil {
		h.logger.Debug(req.Context(), "failed to encode error response to response writer",
			fields, &errs.Error{Description: eerr.Error()})
		return
	}

	h.logger.Info(req.Context(), "", fields, err)
}

// HttpCorsPreProcessorProps configures an HttpCorsPreProcessor. The
// fields other than Enabled have the meaning of the cors.Options field
// of the same name
type HttpCorsPreProcessorProps struct {
	// Enabled turns the checks on. A disabled pre processor lets every
	// request through
	Enabled bool

	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	MaxAge           int
	AllowCredentials bool
}

// HttpCorsPreProcessor applies the cross origin policy to requests
type HttpCorsPreProcessor struct {
	cors    *cors.Cors
	enabled bool
}

// NewHttpCorsPreProcessor creates a cors pre processor
func NewHttpCorsPreProcessor(props HttpCorsPreProcessorProps) *HttpCorsPreProcessor {
	return &HttpCorsPreProcessor{
		cors: cors.New(cors.Options{
			AllowedOrigins:     props.AllowedOrigins,
			AllowedMethods:     props.AllowedMethods,
			AllowedHeaders:     props.AllowedHeaders,
			ExposedHeaders:     props.ExposedHeaders,
			MaxAge:             props.MaxAge,
			AllowCredentials:   props.AllowCredentials,
			OptionsPassthrough: false,
			Debug:              false,
		}),
		enabled: props.Enabled,
	}
}

// ServeHTTP is the implementation of HttpPreProcessor for HttpCorsPreProcessor
func (h *HttpCorsPreProcessor) ServeHTTP(w http.ResponseWriter, req *http.Request) (HttpPreProcessorResult, error) {
	if !h.enabled {
		return HttpPreProcessorResult{Request: req, Continue: true}, nil
	}

	// preflight requests are answered by cors itself and never reach next
	result := HttpPreProcessorResult{Request: req}
	h.cors.ServeHTTP(w, req, func(w http.ResponseWriter, req *http.Request) {
		result = HttpPreProcessorResult{Request: req, Continue: true}
	})

	return result, nil
}

// HttpJsonHandler decodes json request bodies into the values of its
// factory and passes them to its handler
type HttpJsonHandler struct {
	limit   uint
	decoder JsonDecoder
	handler Handler
	logger  logs.Logger
	factory EntityFactory
}

// HttpJsonHandlerProperties configures an HttpJsonHandler
type HttpJsonHandlerProperties struct {
	// Limit is the largest body accepted, in bytes. Defaults to 16 KB
	Limit   uint
	Handler Handler
	Logger  logs.Logger
	Factory EntityFactory
}

// NewHttpJsonHandler creates a json handler. It panics if the handler,
// the logger or the factory are missing
func NewHttpJsonHandler(properties HttpJsonHandlerProperties) *HttpJsonHandler {
	limit := properties.Limit

	if limit == 0 {
		limit = 1 << 14
	}

	if properties.Handler == nil {
		panic("handler must be set")
	}

	if properties.Logger == nil {
		panic("logger must be set")
	}

	if properties.Factory == nil {
		panic("factory must be set")
	}

	return &HttpJsonHandler{
		limit:   limit,
		decoder: JsonDecoder{},
		handler: properties.Handler,
		logger:  properties.Logger.ForClass("http", "HttpJsonHandler"),
		factory: properties.Factory,
	}
}

var (
	ErrHttpContentLengthMissing = errors.New("content-length header missing in request")
	ErrHttpContentLengthExceeds = errors.New("content-length value exceeds request limit")
	ErrHttpContentTypeNotJSON   = errors.New("content-type has unexpected value")
	ErrHttpHandleExpectsNoBody  = errors.New("http handle expects no request body")
	ErrHttpDecodeJSON           = errors.New("error decoding body as json")
)

// ServeHTTP implements HttpMiddleware
func (h *HttpJsonHandler) ServeHTTP(req *http.Request) (interface{}, error) {
	if req.ContentLength < 0 {
		return nil, HttpBadRequest(req.Context(), ErrHttpContentLengthMissing)
	}

	if uint64(req.ContentLength) > uint64(h.limit) {
		return nil, HttpBadRequest(req.Context(), ErrHttpContentLengthExceeds)
	}

	contentType := req.Header.Get("Content-type")
	if req.ContentLength > 0 && contentType != "application/json" {
		return nil, HttpBadRequest(req.Context(), ErrHttpContentTypeNotJSON)
	}

	body := h.factory.Create()
	if body == nil && req.ContentLength > 0 {
		return nil, HttpBadRequest(req.Context(), ErrHttpHandleExpectsNoBody)
	}

	if body != nil && req.ContentLength > 0 {
		if err := h.decoder.DecodeWithLimit(req.Body, body, ReadLimitProps{
			Limit:        req.ContentLength,
			FailOnExceed: true,
		}); err != nil {
			h.logger.Debug(req.Context(), "failed to decode json", logs.MapFields{
				"path":           req.URL.EscapedPath(),
				"method":         req.Method,
				"content_length": req.ContentLength,
				"call_type":      "HttpJsonRequestHandleFailure",
				"err":            err.Error(),
			})
			return nil, HttpBadRequest(req.Context(), ErrHttpDecodeJSON)
		}
	}

	return h.handler.Handle(req.Context(), body)
}

// HttpHandlerFactory wraps a Handler into the middleware of a route
type HttpHandlerFactory interface {
	Make(factory EntityFactory, handler Handler) HttpMiddleware
}

// HttpHandlerFactoryFunc allows functions to act as an HttpHandlerFactory
type HttpHandlerFactoryFunc func(factory EntityFactory, handler Handler) HttpMiddleware

// Make implements HttpHandlerFactory
func (f HttpHandlerFactoryFunc) Make(factory EntityFactory, handler Handler) HttpMiddleware {
	return f(factory, handler)
}

// NewHttpJsonHandlerFactory returns a factory that wraps handlers
// with an HttpJsonHandler
func NewHttpJsonHandlerFactory(logger logs.Logger, limit uint) HttpHandlerFactory {
	return HttpHandlerFactoryFunc(func(factory EntityFactory, handler Handler) HttpMiddleware {
		return NewHttpJsonHandler(HttpJsonHandlerProperties{
			Limit:   limit,
			Handler: handler,
			Logger:  logger,
			Factory: factory,
		})
	})
}

// HttpBinder is the only mechanism to build HttpRouter's, so that an
// HttpRouter cannot be modified after it has been created
type HttpBinder struct {
	handlers      map[string]MethodHandlers
	preProcessors []HttpPreProcessor
	encoder       Encoder
	logger        logs.Logger
	factory       HttpHandlerFactory
}

// Bind registers handler for requests to uri with the method
func (b *HttpBinder) Bind(method string, uri string, handler Handler, factory EntityFactory) {
	route, ok := b.handlers[uri]
	if !ok {
		route = make(MethodHandlers)
		b.handlers[uri] = route
	}

	route.Add(method, b.factory.Make(factory, handler))
}

// AddPreProcessor adds a pre processor to every route
func (b *HttpBinder) AddPreProcessor(preProcessor HttpPreProcessor) {
	b.preProcessors = append(b.preProcessors, preProcessor)
}

// Build creates a router with the handlers bound so far. The binder
// starts over empty afterwards
func (b *HttpBinder) Build() *HttpRouter {
	mux := make(map[string]*HttpRoute)

	for path, handlers := range b.handlers {
		mux[path] = NewHttpRoute(HttpRouteProps{
			Logger:        b.logger.ForClass("http", "route"),
			Encoder:       b.encoder,
			Handlers:      handlers,
			PreProcessors: b.preProcessors,
		})
	}

	b.handlers = make(map[string]MethodHandlers)

	return &HttpRouter{
		encoder: b.encoder,
		logger:  b.logger.ForClass("http", "router"),
		mux:     mux,
	}
}

// HttpBinderProperties configures an HttpBinder
type HttpBinderProperties struct {
	Encoder        Encoder
	Logger         logs.Logger
	HandlerFactory HttpHandlerFactory
}

// NewHttpBinder creates a binder. It panics if any property is missing
func NewHttpBinder(properties HttpBinderProperties) *HttpBinder {
	if properties.Encoder == nil {
		panic("Encoder must be set")
	}

	if properties.Logger == nil {
		panic("Logger must be set")
	}

	if properties.HandlerFactory == nil {
		panic("HandlerFactory must be set")
	}

	return &HttpBinder{
		handlers: make(map[string]MethodHandlers),
		encoder:  properties.Encoder,
		logger:   properties.Logger,
		factory:  properties.HandlerFactory,
	}
}
