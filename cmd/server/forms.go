package main

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/spf13/cast"

	apperrors "github.com/Simplici0/sanquote/internal/errors"
	"github.com/Simplici0/sanquote/internal/services"
)

const maxBody = 1 << 20

// readValues reads a request body as loosely typed values. JSON objects are
// taken as is. Form posts use "quantities.<item>" keys for quantities.
func readValues(r *http.Request) (map[string]any, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			return nil, apperrors.Input("invalid form")
		}
		return formValues(r)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return nil, apperrors.Input("unreadable body")
	}
	values := map[string]any{}
	if len(strings.TrimSpace(string(body))) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(body, &values); err != nil {
		return nil, apperrors.Input("body must be a JSON object")
	}
	return values, nil
}

func formValues(r *http.Request) (map[string]any, error) {
	values := map[string]any{}
	quantities := map[string]any{}
	for key, vs := range r.PostForm {
		if len(vs) == 0 {
			continue
		}
		v := strings.TrimSpace(vs[len(vs)-1])
		if item, ok := strings.CutPrefix(key, "quantities."); ok {
			if item == "" {
				return nil, apperrors.Input("empty quantity name")
			}
			quantities[item] = v
			continue
		}
		values[key] = v
	}
	if len(quantities) > 0 {
		values["quantities"] = quantities
	}
	return values, nil
}

// parsePatch turns a request into an input patch. Bad numbers become zero
// rather than failing the request.
func parsePatch(r *http.Request) (services.Patch, error) {
	values, err := readValues(r)
	if err != nil {
		return services.Patch{}, err
	}
	if raw, ok := values["quantities"]; ok {
		if _, err := cast.ToStringMapE(raw); err != nil {
			return services.Patch{}, apperrors.Input("quantities must be an object")
		}
	}
	return services.PatchFromMap(values), nil
}

func parseOverrideValue(r *http.Request) (float64, error) {
	values, err := readValues(r)
	if err != nil {
		return 0, err
	}
	raw, ok := values["value"]
	if !ok {
		return 0, apperrors.Input("value is required")
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, apperrors.Input(fmt.Sprintf("value must be numeric: %v", raw))
	}
	return v, nil
}
