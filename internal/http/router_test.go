package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/aanand-mishra/alunos/internal/metrics"
	"github.com/aanand-mishra/alunos/internal/storage"
	"github.com/aanand-mishra/alunos/internal/types"
)

type memStore struct {
	next    int64
	rows    map[int64]types.Student
	failAll bool
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]types.Student{}}
}

var errBoom = errors.New("disk on fire")

func (m *memStore) CreateStudent(in types.StudentInput) (types.Student, error) {
	if m.failAll {
		return types.Student{}, errBoom
	}
	m.next++
	s := in.WithID(m.next)
	m.rows[s.ID] = s
	return s, nil
}

func (m *memStore) GetStudentByID(id int64) (types.Student, error) {
	s, ok := m.rows[id]
	if !ok {
		return types.Student{}, fmt.Errorf("id %d: %w", id, storage.ErrNotFound)
	}
	return s, nil
}

func (m *memStore) GetStudents() ([]types.Student, error) {
	if m.failAll {
		return nil, errBoom
	}
	out := make([]types.Student, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateStudentByID(id int64, in types.StudentInput) (types.Student, error) {
	if _, ok := m.rows[id]; !ok {
		return types.Student{}, fmt.Errorf("id %d: %w", id, storage.ErrNotFound)
	}
	m.rows[id] = in.WithID(id)
	return m.rows[id], nil
}

func (m *memStore) DeleteStudentByID(id int64) error {
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("id %d: %w", id, storage.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *memStore) CountStudents() (int64, error) {
	return int64(len(m.rows)), nil
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const anaBody = `{"nome":"Ana","email":"a@x.com","telefone":"123","id_curso":2}`

func TestCreateReturnsStudentWithID(t *testing.T) {
	h := NewRouter(newMemStore(), metrics.New())

	rec := do(t, h, http.MethodPost, "/api/alunos/", anaBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var got types.Student
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := types.Student{ID: 1, Name: "Ana", Email: "a@x.com", Phone: "123", CourseID: 2}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestCreateValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want map[string][]string
	}{
		{
			name: "empty body",
			body: "",
			want: map[string][]string{
				"nome":     {"This field is required."},
				"email":    {"This field is required."},
				"telefone": {"This field is required."},
				"id_curso": {"This field is required."},
			},
		},
		{
			name: "course is not an integer",
			body: `{"nome":"Ana","email":"a@x.com","telefone":"123","id_curso":"x"}`,
			want: map[string][]string{"id_curso": {"A valid integer is required."}},
		},
		{
			name: "phone too long",
			body: `{"nome":"Ana","email":"a@x.com","telefone":"1234567890123456","id_curso":2}`,
			want: map[string][]string{"telefone": {"Ensure this field has no more than 15 characters."}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewRouter(newMemStore(), metrics.New())
			rec := do(t, h, http.MethodPost, "/api/alunos/", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var got map[string][]string
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestListUpdateDelete(t *testing.T) {
	store := newMemStore()
	h := NewRouter(store, metrics.New())

	do(t, h, http.MethodPost, "/api/alunos/", anaBody)

	rec := do(t, h, http.MethodPut, "/api/alunos/1/",
		`{"nome":"Ana Maria","email":"a@x.com","telefone":"123","id_curso":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/alunos/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var list []types.Student
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Ana Maria" || list[0].CourseID != 5 {
		t.Fatalf("unexpected list %+v", list)
	}

	rec = do(t, h, http.MethodDelete, "/api/alunos/1/", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/alunos/1/", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestListEmptyIsArray(t *testing.T) {
	h := NewRouter(newMemStore(), metrics.New())
	rec := do(t, h, http.MethodGet, "/api/alunos/", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected [], got %s", rec.Body.String())
	}
}

func TestUnknownIDs(t *testing.T) {
	h := NewRouter(newMemStore(), metrics.New())

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/alunos/9/", ""},
		{http.MethodPut, "/api/alunos/9/", anaBody},
		{http.MethodDelete, "/api/alunos/9/", ""},
		{http.MethodGet, "/api/alunos/abc/", ""},
	} {
		rec := do(t, h, tc.method, tc.path, tc.body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, rec.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%s %s: decode: %v", tc.method, tc.path, err)
		}
		if body["detail"] != "Not found." {
			t.Fatalf("%s %s: unexpected body %v", tc.method, tc.path, body)
		}
	}
}

func TestStorageFailureIs500(t *testing.T) {
	store := newMemStore()
	store.failAll = true
	h := NewRouter(store, metrics.New())

	if rec := do(t, h, http.MethodGet, "/api/alunos/", ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("list: expected 500, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/alunos/", anaBody); rec.Code != http.StatusInternalServerError {
		t.Fatalf("create: expected 500, got %d", rec.Code)
	}
}

func TestMetricsCountsRoutes(t *testing.T) {
	h := NewRouter(newMemStore(), metrics.New())

	do(t, h, http.MethodGet, "/api/alunos/", "")
	do(t, h, http.MethodGet, "/api/alunos/3/", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`alunos_http_requests_total{code="200",method="GET",route="/api/alunos/"} 1`,
		`alunos_http_requests_total{code="404",method="GET",route="/api/alunos/{id}/"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics to contain %q, got:\n%s", want, body)
		}
	}
}

func TestHealth(t *testing.T) {
	h := NewRouter(newMemStore(), metrics.New())
	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
