package result

import (
	"errors"
	"io"
	"testing"
)

func TestResultOk(t *testing.T) {
	r := Ok(42)
	if !r.IsOk() || r.HasError() {
		t.Fatal(`expected ok result`)
	}
	if v, err := r.Unwrap(); v != 42 || err != nil {
		t.Fatal(v, err)
	}
	if r.ValueUnsafe() != 42 {
		t.Fatal(r.ValueUnsafe())
	}
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
}

func TestResultFail(t *testing.T) {
	sentinel := errors.New(`sentinel`)
	r := Fail[int](sentinel)
	if r.IsOk() || !r.HasError() {
		t.Fatal(`expected failed result`)
	}
	if v, err := r.Unwrap(); v != 0 || err != sentinel {
		t.Fatal(v, err)
	}
	if !r.MatchError(sentinel) {
		t.Fatal(`expected match`)
	}
	if r.MatchError(io.EOF) {
		t.Fatal(`unexpected match`)
	}
}

func TestResultFailNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal(`expected panic`)
		}
	}()
	Fail[int](nil)
}

func TestZeroValueIsOk(t *testing.T) {
	var r Result[string]
	if !r.IsOk() {
		t.Fatal(`zero value should be ok`)
	}
	if v, err := r.Unwrap(); v != `` || err != nil {
		t.Fatal(v, err)
	}
}

func TestStatus(t *testing.T) {
	if !OkStatus().IsOk() {
		t.Fatal(`expected ok status`)
	}
	sentinel := errors.New(`sentinel`)
	if st := FailStatus(sentinel); !st.MatchError(sentinel) {
		t.Fatal(st)
	}
}

func TestPanicError(t *testing.T) {
	e := PanicError{Value: io.EOF}
	if !errors.Is(e, io.EOF) {
		t.Fatal(`expected unwrap to io.EOF`)
	}
	if e.Error() == `` {
		t.Fatal(`expected message`)
	}
	if (PanicError{Value: `boom`}).Unwrap() != nil {
		t.Fatal(`non-error panic value should not unwrap`)
	}
}

func TestCapture(t *testing.T) {
	for _, tc := range [...]struct {
		name    string
		fn      func() (int, error)
		value   int
		wantErr bool
		panics  bool
	}{
		{`value`, func() (int, error) { return 7, nil }, 7, false, false},
		{`error`, func() (int, error) { return 0, io.EOF }, 0, true, false},
		{`panic`, func() (int, error) { panic(`boom`) }, 0, true, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := Capture(tc.fn)
			if r.HasError() != tc.wantErr {
				t.Fatal(r)
			}
			if !tc.wantErr && r.ValueUnsafe() != tc.value {
				t.Fatal(r.ValueUnsafe())
			}
			if tc.panics {
				var panicErr PanicError
				if !errors.As(r.Err(), &panicErr) || panicErr.Value != `boom` {
					t.Fatal(r.Err())
				}
			}
		})
	}
}

func TestCaptureStatus(t *testing.T) {
	if st := CaptureStatus(func() error { return nil }); !st.IsOk() {
		t.Fatal(st)
	}
	if st := CaptureStatus(func() error { return io.EOF }); !st.MatchError(io.EOF) {
		t.Fatal(st)
	}
	st := CaptureStatus(func() error { panic(io.ErrClosedPipe) })
	if !st.MatchError(io.ErrClosedPipe) {
		t.Fatal(st)
	}
}
