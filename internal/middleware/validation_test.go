package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"interviewprep/internal/models"
)

func performValidated[T Validator](body string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	handler := ValidateRequest[T]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestValidateRequestSuccess(t *testing.T) {
	rec, captured := performValidated[*models.SessionSetupRequest](`{"job_position":"SRE","experience":"Senior"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req := GetValidatedRequest[*models.SessionSetupRequest](captured)
	if req.JobPosition != "SRE" || req.Experience != "Senior" {
		t.Fatalf("unexpected validated request: %+v", req)
	}
}

func TestValidateRequestInvalidJSON(t *testing.T) {
	rec, _ := performValidated[*models.SessionSetupRequest](`{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Invalid JSON in request body.")) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestValidateRequestValidationError(t *testing.T) {
	rec, _ := performValidated[*models.SessionSetupRequest](`{"experience":"Senior"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Job position cannot be empty. Please provide one.")) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestValidateRequestEvaluateIndexRequired(t *testing.T) {
	// a missing index must be rejected, not treated as zero
	rec, _ := performValidated[*models.EvaluateRequest](`{"user_answer":"something"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec, captured := performValidated[*models.EvaluateRequest](`{"index":0,"user_answer":"  padded  "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	req := GetValidatedRequest[*models.EvaluateRequest](captured)
	if req.UserAnswer != "padded" {
		t.Fatalf("expected trimmed answer, got %q", req.UserAnswer)
	}
}
