package deployer

import (
	"context"
	"sync"
	"testing"

	"github.com/giantswarm/micrologger/microloggertest"

	"github.com/giantswarm/voicelive-operator/service/stack"
)

type record struct {
	mutex sync.Mutex
	calls []string
}

func (r *record) add(call string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls = append(r.calls, call)
}

func (r *record) position(call string) int {
	for i, c := range r.calls {
		if c == call {
			return i
		}
	}
	return -1
}

type testResource struct {
	name   string
	record *record

	createErr error
	deleteErr error
}

func (r *testResource) EnsureCreated(ctx context.Context, obj interface{}) error {
	r.record.add("create/" + r.name)
	return r.createErr
}

func (r *testResource) EnsureDeleted(ctx context.Context, obj interface{}) error {
	r.record.add("delete/" + r.name)
	return r.deleteErr
}

func (r *testResource) Name() string {
	return r.name
}

func testStack() stack.Stack {
	return stack.Stack{
		Environment: "dev",
		Location:    "westeurope",
		PrincipalID: "2869cee5-50c1-4d29-b372-0e30b6fe5b5e",
		Suffix:      "x7k2p",
	}
}

func newTestDeployer(t *testing.T, phases [][]Resource) *Deployer {
	t.Helper()

	c := Config{
		Logger: microloggertest.New(),

		Phases: phases,
		Stack:  testStack(),
	}

	d, err := New(c)
	if err != nil {
		t.Fatalf("New() == %#v, want nil error", err)
	}

	return d
}

func Test_Deployer_EnsureCreated_PhaseOrder(t *testing.T) {
	r := &record{}
	a := &testResource{name: "a", record: r}
	b := &testResource{name: "b", record: r}
	c := &testResource{name: "c", record: r}
	d := &testResource{name: "d", record: r}

	deployer := newTestDeployer(t, [][]Resource{{a}, {b, c}, {d}})

	err := deployer.EnsureCreated(context.Background())
	if err != nil {
		t.Fatalf("EnsureCreated() == %#v, want nil", err)
	}

	if len(r.calls) != 4 {
		t.Fatalf("got %d calls, want 4", len(r.calls))
	}
	if r.position("create/a") != 0 {
		t.Fatalf("resource a ran at position %d, want 0", r.position("create/a"))
	}
	if r.position("create/d") != 3 {
		t.Fatalf("resource d ran at position %d, want 3", r.position("create/d"))
	}
	// b and c run concurrently within their phase, both before d.
	if r.position("create/b") >= 3 || r.position("create/c") >= 3 {
		t.Fatalf("phase two resources ran after phase three, calls %v", r.calls)
	}
}

func Test_Deployer_EnsureCreated_StopsOnError(t *testing.T) {
	r := &record{}
	a := &testResource{name: "a", record: r}
	b := &testResource{name: "b", record: r, createErr: context.Canceled}
	c := &testResource{name: "c", record: r}

	deployer := newTestDeployer(t, [][]Resource{{a}, {b}, {c}})

	err := deployer.EnsureCreated(context.Background())
	if err == nil {
		t.Fatalf("EnsureCreated() == nil, want error")
	}

	if r.position("create/c") != -1 {
		t.Fatalf("resource c ran after an earlier phase failed, calls %v", r.calls)
	}
}

func Test_Deployer_EnsureDeleted_ReverseOrder(t *testing.T) {
	r := &record{}
	a := &testResource{name: "a", record: r}
	b := &testResource{name: "b", record: r}
	c := &testResource{name: "c", record: r}

	deployer := newTestDeployer(t, [][]Resource{{a}, {b}, {c}})

	err := deployer.EnsureDeleted(context.Background())
	if err != nil {
		t.Fatalf("EnsureDeleted() == %#v, want nil", err)
	}

	if r.position("delete/c") != 0 || r.position("delete/b") != 1 || r.position("delete/a") != 2 {
		t.Fatalf("teardown did not run in reverse phase order, calls %v", r.calls)
	}
}

func Test_Deployer_New_Validation(t *testing.T) {
	testCases := []struct {
		name         string
		config       Config
		errorMatcher func(error) bool
	}{
		{
			name: "case 0: missing logger",
			config: Config{
				Phases: [][]Resource{{&testResource{name: "a", record: &record{}}}},
				Stack:  testStack(),
			},
			errorMatcher: IsInvalidConfig,
		},
		{
			name: "case 1: missing phases",
			config: Config{
				Logger: microloggertest.New(),
				Stack:  testStack(),
			},
			errorMatcher: IsInvalidConfig,
		},
		{
			name: "case 2: empty phase",
			config: Config{
				Logger: microloggertest.New(),
				Phases: [][]Resource{{}},
				Stack:  testStack(),
			},
			errorMatcher: IsInvalidConfig,
		},
		{
			name: "case 3: invalid stack",
			config: Config{
				Logger: microloggertest.New(),
				Phases: [][]Resource{{&testResource{name: "a", record: &record{}}}},
			},
			errorMatcher: IsInvalidConfig,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Log(tc.name)

			_, err := New(tc.config)

			if err == nil {
				t.Fatalf("New() == nil, want error")
			}
			if !tc.errorMatcher(err) {
				t.Fatalf("unexpected error %#v", err)
			}
		})
	}
}
