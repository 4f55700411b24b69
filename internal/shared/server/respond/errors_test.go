package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestValidationWritesFieldIssues(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/profile", func(c *gin.Context) {
		Validation(c, "invalid profile", []FieldIssue{{Field: "email", Issue: "Please enter a valid email address"}})
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPut, "/profile", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code    string       `json:"code"`
			Details []FieldIssue `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("unexpected code %q", body.Error.Code)
	}
	if len(body.Error.Details) != 1 || body.Error.Details[0].Field != "email" {
		t.Fatalf("unexpected details %+v", body.Error.Details)
	}
}
