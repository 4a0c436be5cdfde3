// Package server binds the v1alpha1 API operations to HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/oapi-codegen/runtime"
	strictnethttp "github.com/oapi-codegen/runtime/strictmiddleware/nethttp"

	"github.com/kubev2v/training-planner/api/v1alpha1"
)

type CreateEstimationJSONRequestBody = v1alpha1.EstimationRequest

type CreateEstimationReportJSONRequestBody = v1alpha1.EstimationRequest

type CreateEstimationReportParamsFormat = v1alpha1.ReportFormat

// CreateEstimationReportParams defines parameters for CreateEstimationReport.
type CreateEstimationReportParams struct {
	Format *CreateEstimationReportParamsFormat `form:"format,omitempty" json:"format,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	Health(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/info)
	GetInfo(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/hardware)
	ListHardware(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/hardware/{key})
	GetHardware(w http.ResponseWriter, r *http.Request, key string)
	// (POST /api/v1/estimations)
	CreateEstimation(w http.ResponseWriter, r *http.Request)
	// (POST /api/v1/estimations/report)
	CreateEstimationReport(w http.ResponseWriter, r *http.Request, params CreateEstimationReportParams)
}

type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) wrap(handler http.Handler) http.Handler {
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	return handler
}

func (siw *ServerInterfaceWrapper) Health(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.Health)).ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) GetInfo(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.GetInfo)).ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) ListHardware(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.ListHardware)).ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) GetHardware(w http.ResponseWriter, r *http.Request) {
	var err error

	var key string

	err = runtime.BindStyledParameterWithOptions("simple", "key", chi.URLParam(r, "key"), &key, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "key", Err: err})
		return
	}

	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetHardware(w, r, key)
	})).ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) CreateEstimation(w http.ResponseWriter, r *http.Request) {
	siw.wrap(http.HandlerFunc(siw.Handler.CreateEstimation)).ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) CreateEstimationReport(w http.ResponseWriter, r *http.Request) {
	var params CreateEstimationReportParams

	err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &params.Format)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "format", Err: err})
		return
	}

	siw.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.CreateEstimationReport(w, r, params)
	})).ServeHTTP(w, r)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing matching OpenAPI spec based on the provided mux.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.Health)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/info", wrapper.GetInfo)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/hardware", wrapper.ListHardware)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/hardware/{key}", wrapper.GetHardware)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/api/v1/estimations", wrapper.CreateEstimation)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/api/v1/estimations/report", wrapper.CreateEstimationReport)
	})

	return r
}

type HealthRequestObject struct {
}

type HealthResponseObject interface {
	VisitHealthResponse(w http.ResponseWriter) error
}

type Health200Response struct {
}

func (response Health200Response) VisitHealthResponse(w http.ResponseWriter) error {
	w.WriteHeader(200)
	return nil
}

type GetInfoRequestObject struct {
}

type GetInfoResponseObject interface {
	VisitGetInfoResponse(w http.ResponseWriter) error
}

type GetInfo200JSONResponse v1alpha1.Info

func (response GetInfo200JSONResponse) VisitGetInfoResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type ListHardwareRequestObject struct {
}

type ListHardwareResponseObject interface {
	VisitListHardwareResponse(w http.ResponseWriter) error
}

type ListHardware200JSONResponse v1alpha1.HardwareTierList

func (response ListHardware200JSONResponse) VisitListHardwareResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type GetHardwareRequestObject struct {
	Key string `json:"key"`
}

type GetHardwareResponseObject interface {
	VisitGetHardwareResponse(w http.ResponseWriter) error
}

type GetHardware200JSONResponse v1alpha1.HardwareTier

func (response GetHardware200JSONResponse) VisitGetHardwareResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type GetHardware404JSONResponse v1alpha1.Error

func (response GetHardware404JSONResponse) VisitGetHardwareResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(404)

	return json.NewEncoder(w).Encode(response)
}

type GetHardware500JSONResponse v1alpha1.Error

func (response GetHardware500JSONResponse) VisitGetHardwareResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(500)

	return json.NewEncoder(w).Encode(response)
}

type CreateEstimationRequestObject struct {
	Body *CreateEstimationJSONRequestBody
}

type CreateEstimationResponseObject interface {
	VisitCreateEstimationResponse(w http.ResponseWriter) error
}

type CreateEstimation200JSONResponse v1alpha1.EstimationResult

func (response CreateEstimation200JSONResponse) VisitCreateEstimationResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	return json.NewEncoder(w).Encode(response)
}

type CreateEstimation400JSONResponse v1alpha1.Error

func (response CreateEstimation400JSONResponse) VisitCreateEstimationResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(400)

	return json.NewEncoder(w).Encode(response)
}

type CreateEstimation500JSONResponse v1alpha1.Error

func (response CreateEstimation500JSONResponse) VisitCreateEstimationResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(500)

	return json.NewEncoder(w).Encode(response)
}

type CreateEstimationReportRequestObject struct {
	Params CreateEstimationReportParams
	Body   *CreateEstimationReportJSONRequestBody
}

type CreateEstimationReportResponseObject interface {
	VisitCreateEstimationReportResponse(w http.ResponseWriter) error
}

// CreateEstimationReport200Response carries a rendered report of any supported format.
type CreateEstimationReport200Response struct {
	Body          io.Reader
	ContentType   string
	Filename      string
	ContentLength int64
}

func (response CreateEstimationReport200Response) VisitCreateEstimationReportResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", response.ContentType)
	if response.ContentLength != 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(response.ContentLength, 10))
	}
	if response.Filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", response.Filename))
	}
	w.WriteHeader(200)

	if closer, ok := response.Body.(io.ReadCloser); ok {
		defer closer.Close()
	}
	_, err := io.Copy(w, response.Body)
	return err
}

type CreateEstimationReport400JSONResponse v1alpha1.Error

func (response CreateEstimationReport400JSONResponse) VisitCreateEstimationReportResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(400)

	return json.NewEncoder(w).Encode(response)
}

type CreateEstimationReport500JSONResponse v1alpha1.Error

func (response CreateEstimationReport500JSONResponse) VisitCreateEstimationReportResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(500)

	return json.NewEncoder(w).Encode(response)
}

// StrictServerInterface represents all server handlers.
type StrictServerInterface interface {
	// (GET /health)
	Health(ctx context.Context, request HealthRequestObject) (HealthResponseObject, error)
	// (GET /api/v1/info)
	GetInfo(ctx context.Context, request GetInfoRequestObject) (GetInfoResponseObject, error)
	// (GET /api/v1/hardware)
	ListHardware(ctx context.Context, request ListHardwareRequestObject) (ListHardwareResponseObject, error)
	// (GET /api/v1/hardware/{key})
	GetHardware(ctx context.Context, request GetHardwareRequestObject) (GetHardwareResponseObject, error)
	// (POST /api/v1/estimations)
	CreateEstimation(ctx context.Context, request CreateEstimationRequestObject) (CreateEstimationResponseObject, error)
	// (POST /api/v1/estimations/report)
	CreateEstimationReport(ctx context.Context, request CreateEstimationReportRequestObject) (CreateEstimationReportResponseObject, error)
}

type StrictHandlerFunc = strictnethttp.StrictHTTPHandlerFunc
type StrictMiddlewareFunc = strictnethttp.StrictHTTPMiddlewareFunc

type StrictHTTPServerOptions struct {
	RequestErrorHandlerFunc  func(w http.ResponseWriter, r *http.Request, err error)
	ResponseErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func NewStrictHandler(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		},
	}}
}

func NewStrictHandlerWithOptions(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc, options StrictHTTPServerOptions) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: options}
}

type strictHandler struct {
	ssi         StrictServerInterface
	middlewares []StrictMiddlewareFunc
	options     StrictHTTPServerOptions
}

func (sh *strictHandler) chain(handler StrictHandlerFunc, operationID string) StrictHandlerFunc {
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, operationID)
	}
	return handler
}

// Health operation middleware
func (sh *strictHandler) Health(w http.ResponseWriter, r *http.Request) {
	var request HealthRequestObject

	handler := sh.chain(func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.Health(ctx, request.(HealthRequestObject))
	}, "Health")

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(HealthResponseObject); ok {
		if err := validResponse.VisitHealthResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// GetInfo operation middleware
func (sh *strictHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	var request GetInfoRequestObject

	handler := sh.chain(func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetInfo(ctx, request.(GetInfoRequestObject))
	}, "GetInfo")

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(GetInfoResponseObject); ok {
		if err := validResponse.VisitGetInfoResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// ListHardware operation middleware
func (sh *strictHandler) ListHardware(w http.ResponseWriter, r *http.Request) {
	var request ListHardwareRequestObject

	handler := sh.chain(func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.ListHardware(ctx, request.(ListHardwareRequestObject))
	}, "ListHardware")

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(ListHardwareResponseObject); ok {
		if err := validResponse.VisitListHardwareResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// GetHardware operation middleware
func (sh *strictHandler) GetHardware(w http.ResponseWriter, r *http.Request, key string) {
	var request GetHardwareRequestObject

	request.Key = key

	handler := sh.chain(func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.GetHardware(ctx, request.(GetHardwareRequestObject))
	}, "GetHardware")

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(GetHardwareResponseObject); ok {
		if err := validResponse.VisitGetHardwareResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// CreateEstimation operation middleware
func (sh *strictHandler) CreateEstimation(w http.ResponseWriter, r *http.Request) {
	var request CreateEstimationRequestObject

	var body CreateEstimationJSONRequestBody
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
		return
	}
	request.Body = &body

	handler := sh.chain(func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.CreateEstimation(ctx, request.(CreateEstimationRequestObject))
	}, "CreateEstimation")

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(CreateEstimationResponseObject); ok {
		if err := validResponse.VisitCreateEstimationResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}

// CreateEstimationReport operation middleware
func (sh *strictHandler) CreateEstimationReport(w http.ResponseWriter, r *http.Request, params CreateEstimationReportParams) {
	var request CreateEstimationReportRequestObject

	request.Params = params

	var body CreateEstimationReportJSONRequestBody
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
		return
	}
	request.Body = &body

	handler := sh.chain(func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
		return sh.ssi.CreateEstimationReport(ctx, request.(CreateEstimationReportRequestObject))
	}, "CreateEstimationReport")

	response, err := handler(r.Context(), w, r, request)

	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	} else if validResponse, ok := response.(CreateEstimationReportResponseObject); ok {
		if err := validResponse.VisitCreateEstimationReportResponse(w); err != nil {
			sh.options.ResponseErrorHandlerFunc(w, r, err)
		}
	} else if response != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, fmt.Errorf("unexpected response type: %T", response))
	}
}
