package server

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/docvault/internal/api/generated"
)

// Маршруты роутера совпадают с операциями встроенного OpenAPI контракта.
func TestRouter_MatchesOpenAPIContract(t *testing.T) {
	swagger, err := generated.GetSwagger()
	if err != nil {
		t.Fatalf("GetSwagger() ошибка: %v", err)
	}
	if err := swagger.Validate(context.Background()); err != nil {
		t.Fatalf("контракт невалиден: %v", err)
	}

	var fromSpec []string
	for path, item := range swagger.Paths.Map() {
		for method := range item.Operations() {
			fromSpec = append(fromSpec, method+" "+path)
		}
	}

	router, ok := newTestRouter().(chi.Routes)
	if !ok {
		t.Fatal("роутер не реализует chi.Routes")
	}
	var fromRouter []string
	err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		fromRouter = append(fromRouter, method+" "+route)
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk: %v", err)
	}

	sort.Strings(fromSpec)
	sort.Strings(fromRouter)
	if len(fromSpec) != len(fromRouter) {
		t.Fatalf("маршруты роутера %v, операции контракта %v", fromRouter, fromSpec)
	}
	for i := range fromSpec {
		if fromSpec[i] != fromRouter[i] {
			t.Errorf("маршрут %q, ожидается %q", fromRouter[i], fromSpec[i])
		}
	}
}
