package sheetstore

import (
	"context"
	"fmt"
	"sync"
)

// fakeTabular is an in-memory sheets.Tabular with per-tab row slices. It
// counts reads so tests can assert that mutations re-read instead of reusing
// stale indices.
type fakeTabular struct {
	mu    sync.Mutex
	tabs  map[string][][]string
	reads map[string]int
	fail  error
}

func newFakeTabular() *fakeTabular {
	return &fakeTabular{tabs: map[string][][]string{}, reads: map[string]int{}}
}

func (f *fakeTabular) seed(tab string, rows ...[]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabs[tab] = rows
}

func (f *fakeTabular) rowCount(tab string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tabs[tab])
}

func (f *fakeTabular) ReadTab(_ context.Context, tab string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	f.reads[tab]++
	out := make([][]string, len(f.tabs[tab]))
	for i, row := range f.tabs[tab] {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (f *fakeTabular) UpdateRow(_ context.Context, tab string, row int, values []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if row < 0 || row >= len(f.tabs[tab]) {
		return fmt.Errorf("row %d out of range for tab %s", row, tab)
	}
	f.tabs[tab][row] = append([]string(nil), values...)
	return nil
}

func (f *fakeTabular) AppendRow(_ context.Context, tab string, values []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.tabs[tab] = append(f.tabs[tab], append([]string(nil), values...))
	return nil
}

func (f *fakeTabular) DeleteRow(_ context.Context, tab string, row int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if row < 0 || row >= len(f.tabs[tab]) {
		return fmt.Errorf("row %d out of range for tab %s", row, tab)
	}
	f.tabs[tab] = append(f.tabs[tab][:row], f.tabs[tab][row+1:]...)
	return nil
}
