package exam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func setupHandler() (*Handler, *mockRepo) {
	repo := newMockRepo()
	return NewHandler(NewService(repo)), repo
}

func TestHandlerCreateExam(t *testing.T) {
	h, _ := setupHandler()
	e := echo.New()

	patientID := uuid.New()
	body := `{
		"patientId": "` + patientID.String() + `",
		"dataExame": "2024-01-01T00:00:00Z",
		"tipo": "sangue",
		"laboratorio": "Lab Central",
		"resultados": [
			{"parametro": "Hemoglobina", "valor": "13.2", "unidade": "g/dL"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exames", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateExam(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got Record
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == 0 {
		t.Error("expected assigned exam id")
	}
	if len(got.Results) != 1 || got.Results[0].ID == nil || *got.Results[0].ID != 1 {
		t.Errorf("expected result id 1 in response, got %+v", got.Results)
	}
}

func TestHandlerCreateExam_MissingPatient(t *testing.T) {
	h, _ := setupHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exames", strings.NewReader(`{"tipo":"sangue"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreateExam(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandlerGetExam_NotFound(t *testing.T) {
	h, _ := setupHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("12345")

	err := h.GetExam(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandlerGetExam_InvalidID(t *testing.T) {
	h, _ := setupHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.GetExam(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandlerListExamsByPatient(t *testing.T) {
	h, repo := setupHandler()
	e := echo.New()
	patientID := uuid.New()

	svc := NewService(repo)
	for _, date := range []string{"2024-01-01", "2024-02-01", "2024-03-01"} {
		rec := &Record{PatientID: patientID, ExamDate: day(date)}
		if err := svc.CreateExam(context.Background(), rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/?limit=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	if err := h.ListExamsByPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []*Record `json:"data"`
		Total int       `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Data) != 2 || resp.Total != 3 {
		t.Errorf("expected 2 of 3 exams, got %d of %d", len(resp.Data), resp.Total)
	}
}

func TestHandlerEvolution(t *testing.T) {
	h, repo := setupHandler()
	e := echo.New()
	patientID := uuid.New()

	svc := NewService(repo)
	for _, pair := range []struct{ date, value string }{
		{"2024-01-01", "95"},
		{"2024-03-01", "101"},
	} {
		rec := &Record{
			PatientID: patientID,
			ExamDate:  day(pair.date),
			Results:   []Result{result("Glicemia", pair.value, "mg/dL")},
		}
		if err := svc.CreateExam(context.Background(), rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	if err := h.Evolution(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var series []Series
	if err := json.Unmarshal(rec.Body.Bytes(), &series); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 1 || series[0].ID != 6 {
		t.Fatalf("expected one glicemia series, got %+v", series)
	}
	if len(series[0].Points) != 2 {
		t.Errorf("expected 2 points, got %d", len(series[0].Points))
	}
}

func TestHandlerDeleteExam(t *testing.T) {
	h, repo := setupHandler()
	e := echo.New()

	svc := NewService(repo)
	recExam := &Record{PatientID: uuid.New(), ExamDate: day("2024-01-01")}
	if err := svc.CreateExam(context.Background(), recExam); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.DeleteExam(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, err := svc.GetExam(context.Background(), 1); err == nil {
		t.Error("expected exam deleted")
	}
}
