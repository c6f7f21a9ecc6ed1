// Package oapi binds the routes of api/openapi.yaml to a ServerInterface.
// It follows the layout of oapi-codegen's chi server output and is kept in
// sync with the document by hand.
package oapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// Defines values for Collection.
const (
	ExchangeRates Collection = "exchange-rates"
	News          Collection = "news"
	Rates         Collection = "rates"
	Slides        Collection = "slides"
)

// Collection defines model for Collection.
type Collection string

// GetAdminContentParams defines parameters for GetAdminContent.
type GetAdminContentParams struct {
	Token *string `json:"token,omitempty"`
}

// PostContentJSONBody defines parameters for PostContent.
type PostContentJSONBody map[string]interface{}

// PostContentParams defines parameters for PostContent.
type PostContentParams struct {
	Token *string `json:"token,omitempty"`
}

// DeleteContentIdParams defines parameters for DeleteContentId.
type DeleteContentIdParams struct {
	Token *string `json:"token,omitempty"`
}

// PutContentIdJSONBody defines parameters for PutContentId.
type PutContentIdJSONBody map[string]interface{}

// PutContentIdParams defines parameters for PutContentId.
type PutContentIdParams struct {
	Token *string `json:"token,omitempty"`
}

// PostAuthJSONBody defines parameters for PostAuth.
type PostAuthJSONBody struct {
	Password *string `json:"password,omitempty"`
	Username *string `json:"username,omitempty"`
}

// PostUserJSONBody defines parameters for PostUser.
type PostUserJSONBody struct {
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Username *string `json:"username,omitempty"`
}

// PostUserParams defines parameters for PostUser.
type PostUserParams struct {
	Token *string `json:"token,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Аутентификация пользователя
	// (POST /auth)
	PostAuth(w http.ResponseWriter, r *http.Request)
	// Все записи коллекции, включая неактивные
	// (GET /admin/{collection})
	GetAdminContent(w http.ResponseWriter, r *http.Request, collection Collection, params GetAdminContentParams)
	// Создание пользователя
	// (POST /user)
	PostUser(w http.ResponseWriter, r *http.Request, params PostUserParams)
	// Активные записи коллекции
	// (GET /{collection})
	GetContent(w http.ResponseWriter, r *http.Request, collection Collection)
	// Создание записи
	// (POST /{collection})
	PostContent(w http.ResponseWriter, r *http.Request, collection Collection, params PostContentParams)
	// Удаление записи по идентификатору
	// (DELETE /{collection}/{id})
	DeleteContentId(w http.ResponseWriter, r *http.Request, collection Collection, id string, params DeleteContentIdParams)
	// Обновление записи
	// (PUT /{collection}/{id})
	PutContentId(w http.ResponseWriter, r *http.Request, collection Collection, id string, params PutContentIdParams)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

// PostAuth operation middleware
func (siw *ServerInterfaceWrapper) PostAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PostAuth(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

// GetAdminContent operation middleware
func (siw *ServerInterfaceWrapper) GetAdminContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var err error

	// ------------- Path parameter "collection" -------------
	var collection Collection

	err = runtime.BindStyledParameterWithOptions("simple", "collection", chi.URLParam(r, "collection"), &collection, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "collection", Err: err})
		return
	}

	// Parameter object where we will unmarshal all parameters from the context
	var params GetAdminContentParams

	params.Token, err = bindTokenHeader(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetAdminContent(w, r, collection, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

// PostUser operation middleware
func (siw *ServerInterfaceWrapper) PostUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params PostUserParams

	params.Token, err = bindTokenHeader(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PostUser(w, r, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

// GetContent operation middleware
func (siw *ServerInterfaceWrapper) GetContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var err error

	// ------------- Path parameter "collection" -------------
	var collection Collection

	err = runtime.BindStyledParameterWithOptions("simple", "collection", chi.URLParam(r, "collection"), &collection, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "collection", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetContent(w, r, collection)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

// PostContent operation middleware
func (siw *ServerInterfaceWrapper) PostContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var err error

	// ------------- Path parameter "collection" -------------
	var collection Collection

	err = runtime.BindStyledParameterWithOptions("simple", "collection", chi.URLParam(r, "collection"), &collection, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "collection", Err: err})
		return
	}

	// Parameter object where we will unmarshal all parameters from the context
	var params PostContentParams

	params.Token, err = bindTokenHeader(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PostContent(w, r, collection, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

// DeleteContentId operation middleware
func (siw *ServerInterfaceWrapper) DeleteContentId(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var err error

	// ------------- Path parameter "collection" -------------
	var collection Collection

	err = runtime.BindStyledParameterWithOptions("simple", "collection", chi.URLParam(r, "collection"), &collection, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "collection", Err: err})
		return
	}

	// ------------- Path parameter "id" -------------
	var id string

	err = runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	// Parameter object where we will unmarshal all parameters from the context
	var params DeleteContentIdParams

	params.Token, err = bindTokenHeader(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.DeleteContentId(w, r, collection, id, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

// PutContentId operation middleware
func (siw *ServerInterfaceWrapper) PutContentId(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var err error

	// ------------- Path parameter "collection" -------------
	var collection Collection

	err = runtime.BindStyledParameterWithOptions("simple", "collection", chi.URLParam(r, "collection"), &collection, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "collection", Err: err})
		return
	}

	// ------------- Path parameter "id" -------------
	var id string

	err = runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	// Parameter object where we will unmarshal all parameters from the context
	var params PutContentIdParams

	params.Token, err = bindTokenHeader(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PutContentId(w, r, collection, id, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

// ------------- Optional header parameter "token" -------------
func bindTokenHeader(r *http.Request) (*string, error) {
	valueList, found := r.Header[http.CanonicalHeaderKey("token")]
	if !found {
		return nil, nil
	}

	n := len(valueList)
	if n != 1 {
		return nil, &TooManyValuesForParamError{ParamName: "token", Count: n}
	}

	var token string

	err := runtime.BindStyledParameterWithOptions("simple", "token", valueList[0], &token, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
	if err != nil {
		return nil, &InvalidParamFormatError{ParamName: "token", Err: err}
	}

	return &token, nil
}

type UnescapedCookieParamError struct {
	ParamName string
	Err       error
}

func (e *UnescapedCookieParamError) Error() string {
	return fmt.Sprintf("error unescaping cookie parameter '%s'", e.ParamName)
}

func (e *UnescapedCookieParamError) Unwrap() error {
	return e.Err
}

type UnmarshalingParamError struct {
	ParamName string
	Err       error
}

func (e *UnmarshalingParamError) Error() string {
	return fmt.Sprintf("Error unmarshaling parameter %s as JSON: %s", e.ParamName, e.Err.Error())
}

func (e *UnmarshalingParamError) Unwrap() error {
	return e.Err
}

type RequiredParamError struct {
	ParamName string
}

func (e *RequiredParamError) Error() string {
	return fmt.Sprintf("Query argument %s is required, but not found", e.ParamName)
}

type RequiredHeaderError struct {
	ParamName string
	Err       error
}

func (e *RequiredHeaderError) Error() string {
	return fmt.Sprintf("Header parameter %s is required, but not found", e.ParamName)
}

func (e *RequiredHeaderError) Unwrap() error {
	return e.Err
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

type TooManyValuesForParamError struct {
	ParamName string
	Count     int
}

func (e *TooManyValuesForParamError) Error() string {
	return fmt.Sprintf("Expected one value for %s, got %d", e.ParamName, e.Count)
}

// Handler creates http.Handler with routing matching OpenAPI spec.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
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

func HandlerFromMuxWithBaseURL(si ServerInterface, r chi.Router, baseURL string) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseURL:    baseURL,
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
		r.Post(options.BaseURL+"/auth", wrapper.PostAuth)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/admin/{collection}", wrapper.GetAdminContent)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/user", wrapper.PostUser)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/{collection}", wrapper.GetContent)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/{collection}", wrapper.PostContent)
	})
	r.Group(func(r chi.Router) {
		r.Delete(options.BaseURL+"/{collection}/{id}", wrapper.DeleteContentId)
	})
	r.Group(func(r chi.Router) {
		r.Put(options.BaseURL+"/{collection}/{id}", wrapper.PutContentId)
	})

	return r
}
