package httpadapter

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oncograph/paperqa/internal/core/domain"
)

func newUploadRequest(t *testing.T, fieldName, filename, contentType, body string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + fieldName + `"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create multipart part: %v", err)
	}
	if _, err := part.Write([]byte(body)); err != nil {
		t.Fatalf("write multipart body: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/papers", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadPaperAcceptsMultipart(t *testing.T) {
	handler := newTestHandler(handlerFakes{}, Options{})

	req := newUploadRequest(t, "file", "extract.json", "application/json", `{"Sections": {}}`)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.Code, res.Body.String())
	}

	var paper domain.Paper
	if err := json.NewDecoder(res.Body).Decode(&paper); err != nil {
		t.Fatalf("decode paper: %v", err)
	}
	if paper.Filename != "extract.json" {
		t.Fatalf("unexpected filename %q", paper.Filename)
	}
	if paper.Status != domain.StatusUploaded {
		t.Fatalf("unexpected status %s", paper.Status)
	}
}

func TestUploadPaperAcceptsAnyPartContentType(t *testing.T) {
	handler := newTestHandler(handlerFakes{}, Options{})

	cases := []struct {
		filename    string
		contentType string
		body        string
	}{
		{"extract.json", "application/json", `{"Sections": {"Abstract": {"text": "ml"}}}`},
		{"paper.pdf", "application/pdf", "%PDF-1.4"},
		{"blob.bin", "application/octet-stream", "raw"},
	}
	for _, tc := range cases {
		req := newUploadRequest(t, "file", tc.filename, tc.contentType, tc.body)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if res.Code != http.StatusAccepted {
			t.Fatalf("upload %s (%s): expected 202, got %d: %s",
				tc.filename, tc.contentType, res.Code, res.Body.String())
		}
	}
}

func TestUploadPaperRequiresFileField(t *testing.T) {
	handler := newTestHandler(handlerFakes{}, Options{})

	req := newUploadRequest(t, "document", "extract.json", "application/json", "{}")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestGetPaperReturnsState(t *testing.T) {
	reader := &paperReaderFake{paper: &domain.Paper{ID: "p-9", Status: domain.StatusProcessing}}
	handler := newTestHandler(handlerFakes{papers: reader}, Options{})

	req := httptest.NewRequest(http.MethodGet, "/v1/papers/p-9", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var paper domain.Paper
	if err := json.NewDecoder(res.Body).Decode(&paper); err != nil {
		t.Fatalf("decode paper: %v", err)
	}
	if paper.ID != "p-9" || paper.Status != domain.StatusProcessing {
		t.Fatalf("unexpected paper %+v", paper)
	}
}
