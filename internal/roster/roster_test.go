package roster

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/aanand-mishra/alunos/internal/types"
)

type fakeLister struct {
	list  []types.Student
	err   error
	calls int
}

func (f *fakeLister) List(context.Context) ([]types.Student, error) {
	f.calls++
	return f.list, f.err
}

var (
	ana   = types.Student{ID: 1, Name: "Ana", Email: "a@x.com", Phone: "123", CourseID: 2}
	bruno = types.Student{ID: 2, Name: "Bruno", Email: "b@x.com", Phone: "456", CourseID: 1}
)

func TestLoadReplacesWholeList(t *testing.T) {
	var c Cache
	c.Replace([]types.Student{ana})

	l := &fakeLister{list: []types.Student{bruno}}
	if err := c.Load(context.Background(), l); err != nil {
		t.Fatalf("load: %v", err)
	}

	if !reflect.DeepEqual(c.Students(), []types.Student{bruno}) {
		t.Fatalf("expected cache to hold only the fetched list, got %+v", c.Students())
	}
	if l.calls != 1 {
		t.Fatalf("expected one fetch, got %d", l.calls)
	}
}

func TestLoadFailureKeepsPreviousList(t *testing.T) {
	var c Cache
	c.Replace([]types.Student{ana, bruno})

	boom := errors.New("connection refused")
	err := c.Load(context.Background(), &fakeLister{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}

	if !reflect.DeepEqual(c.Students(), []types.Student{ana, bruno}) {
		t.Fatalf("expected previous list to survive, got %+v", c.Students())
	}
}

func TestStudentsReturnsCopy(t *testing.T) {
	var c Cache
	c.Replace([]types.Student{ana})

	got := c.Students()
	got[0].Name = "Changed"

	if s, _ := c.At(0); s.Name != "Ana" {
		t.Fatalf("expected cache to be unaffected by caller writes, got %q", s.Name)
	}
}

func TestFindAndAt(t *testing.T) {
	var c Cache
	c.Replace([]types.Student{ana, bruno})

	if s, ok := c.Find(2); !ok || s != bruno {
		t.Fatalf("expected to find bruno, got %+v %v", s, ok)
	}
	if _, ok := c.Find(99); ok {
		t.Fatalf("expected unknown id to be missing")
	}
	if _, ok := c.At(2); ok {
		t.Fatalf("expected out of range index to be missing")
	}
	if c.Len() != 2 {
		t.Fatalf("expected len 2, got %d", c.Len())
	}
}
