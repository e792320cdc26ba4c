package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

// Ключи схем тел запросов
const (
	RegisterUserV1      = "RegisterUserRequest/1.0.0"
	LoginV1             = "LoginRequest/1.0.0"
	RefreshTokenV1      = "RefreshTokenRequest/1.0.0"
	CreateListingV1     = "CreateListingRequest/1.0.0"
	UpdateListingV1     = "UpdateListingRequest/1.0.0"
	AddMediaV1          = "AddMediaRequest/1.0.0"
	CreateEnquiryV1     = "CreateEnquiryRequest/1.0.0"
	PostMessageV1       = "PostMessageRequest/1.0.0"
	CreateReviewV1      = "CreateReviewRequest/1.0.0"
	UniversityV1        = "UniversityRequest/1.0.0"
	CampusV1            = "CampusRequest/1.0.0"
	NearbyPlaceV1       = "NearbyPlaceRequest/1.0.0"
	AttachNearbyPlaceV1 = "AttachNearbyPlaceRequest/1.0.0"
)

const schemasRoot = "schemas/requests"

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(schemasFS, schemasRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := schemasFS.ReadFile(path)
		if err != nil {
			return err
		}
		if err := compiler.AddResource(path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		panic(fmt.Sprintf("contracts: loading embedded schemas: %v", err))
	}

	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			panic(fmt.Sprintf("contracts: compiling %s: %v", path, err))
		}
		compiledSchemas[generateKeyFromPath(path)] = schema
	}
}

// generateKeyFromPath преобразует "schemas/requests/create-listing/v1.json"
// в "CreateListingRequest/1.0.0"
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, schemasRoot+"/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString("Request")

	version := strings.TrimPrefix(parts[1], "v") + ".0.0"
	return name.String() + "/" + version
}

// ValidateRequest проверяет тело запроса по схеме.
// Нарушения схемы возвращаются как *domain.ValidationError с ошибками по полям.
func ValidateRequest(key string, body []byte) error {
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema %q not found", key)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return domain.NewValidationError("body", "request body must be valid JSON")
	}

	err := schema.Validate(v)
	if err == nil {
		return nil
	}
	var schemaErr *jsonschema.ValidationError
	if !errors.As(err, &schemaErr) {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	verr := &domain.ValidationError{}
	collectLeafErrors(verr, schemaErr)
	if len(verr.Fields) == 0 {
		verr.Add("body", schemaErr.Message)
	}
	return verr
}

func collectLeafErrors(verr *domain.ValidationError, e *jsonschema.ValidationError) {
	if len(e.Causes) > 0 {
		for _, cause := range e.Causes {
			collectLeafErrors(verr, cause)
		}
		return
	}

	field := fieldFromPointer(e.InstanceLocation)
	if missing, ok := strings.CutPrefix(e.Message, "missing properties: "); ok {
		for _, name := range strings.Split(missing, ", ") {
			name = strings.Trim(name, "'")
			verr.Add(joinField(field, name), "this field is required")
		}
		return
	}
	if field == "" {
		field = "body"
	}
	verr.Add(field, e.Message)
}

// fieldFromPointer переводит JSON Pointer "/media/0/url" в "media[0].url"
func fieldFromPointer(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}
	var b strings.Builder
	for _, segment := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		segment = strings.NewReplacer("~1", "/", "~0", "~").Replace(segment)
		if isIndex(segment) {
			b.WriteString("[" + segment + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(segment)
	}
	return b.String()
}

func joinField(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
