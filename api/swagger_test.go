package api

import "testing"

func TestGetSwagger(t *testing.T) {
	swagger, err := GetSwagger()
	if err != nil {
		t.Fatalf("GetSwagger() unexpected error: %v", err)
	}
	for _, path := range []string{"/ping", "/session", "/login", "/logout", "/profile", "/clubs", "/clubs/{clubId}", "/clubs/{clubId}/join", "/clubs/{clubId}/leave"} {
		if swagger.Paths.Find(path) == nil {
			t.Errorf("missing path %s", path)
		}
	}
}
