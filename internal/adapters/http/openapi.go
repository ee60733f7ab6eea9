package httpadapter

import (
	_ "embed"
	"errors"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var openapiSpec []byte

// validationMiddleware checks incoming requests against the embedded API
// contract. Paths outside the contract (health, metrics) pass through.
func validationMiddleware(next http.Handler) http.Handler {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		panic("load embedded openapi contract: " + err.Error())
	}
	if err := doc.Validate(loader.Context); err != nil {
		panic("validate embedded openapi contract: " + err.Error())
	}
	specRouter, err := legacyrouter.NewRouter(doc)
	if err != nil {
		panic("build openapi router: " + err.Error())
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, pathParams, err := specRouter.FindRoute(r)
		if err != nil {
			if errors.Is(err, routers.ErrPathNotFound) {
				next.ServeHTTP(w, r)
				return
			}
			if errors.Is(err, routers.ErrMethodNotAllowed) {
				writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		// Multipart bodies are left to the handler: upload parts carry
		// whatever Content-Type the extraction tool set (JSON, PDF), and
		// decoding them against the binary file schema rejects valid input.
		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				MultiError:         false,
				ExcludeRequestBody: strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/"),
			},
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		next.ServeHTTP(w, r)
	})
}
