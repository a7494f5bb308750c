package pager

import (
	"bytes"
	"testing"
)

func TestGetPageZeroInitializesBeyondFileLength(t *testing.T) {
	p := OpenBackend(NewMemBackend(), 0)

	pg, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage(0): %v", err)
	}

	zero := make([]byte, PageSize)
	if !bytes.Equal(pg, zero) {
		t.Fatalf("expected zero-initialized page, got non-zero bytes")
	}
}

func TestGetPageLoadsExistingData(t *testing.T) {
	data := make([]byte, PageSize)
	copy(data, []byte("hello"))

	p := OpenBackend(NewMemBackendFrom(data), int64(len(data)))

	pg, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage(0): %v", err)
	}

	if !bytes.HasPrefix(pg[:], []byte("hello")) {
		t.Fatalf("expected page to start with 'hello', got %q", pg[:5])
	}
}

func TestGetPageOutOfBoundsIsFatal(t *testing.T) {
	p := OpenBackend(NewMemBackend(), 0)

	_, err := p.GetPage(TableMaxPages)
	if err == nil {
		t.Fatalf("expected fatal error for out-of-bounds page")
	}

	var fatal *FatalError
	if !asFatal(err, &fatal) {
		t.Fatalf("expected *FatalError, got %T: %v", err, err)
	}
}

func TestFlushAndClose(t *testing.T) {
	backend := NewMemBackend()
	p := OpenBackend(backend, 0)

	pg, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage(0): %v", err)
	}
	copy(pg[:], []byte("row one"))

	if err := p.Close(0, 1, 16); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !bytes.HasPrefix(backend.Bytes(), []byte("row one")) {
		t.Fatalf("expected flushed partial page, got %q", backend.Bytes())
	}
	if len(backend.Bytes()) != 16 {
		t.Fatalf("expected exactly 16 bytes flushed (1 row), got %d", len(backend.Bytes()))
	}
}

func TestCloseFlushesFullPagesThenPartialTail(t *testing.T) {
	backend := NewMemBackend()
	p := OpenBackend(backend, 0)

	full, err := p.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage(0): %v", err)
	}
	for i := range full {
		full[i] = 0xAB
	}

	tail, err := p.GetPage(1)
	if err != nil {
		t.Fatalf("GetPage(1): %v", err)
	}
	copy(tail[:], []byte("partial"))

	if err := p.Close(1, 1, 7); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := PageSize + 7
	if len(backend.Bytes()) != want {
		t.Fatalf("expected %d bytes flushed, got %d", want, len(backend.Bytes()))
	}
}

func asFatal(err error, target **FatalError) bool {
	if fe, ok := err.(*FatalError); ok {
		*target = fe
		return true
	}
	return false
}
