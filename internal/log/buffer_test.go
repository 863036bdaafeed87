package log

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRingBuffer_Capacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		expected int
	}{
		{"valid", 5, 5},
		{"zero normalized", 0, 1},
		{"negative normalized", -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewRingBuffer(tt.capacity)
			require.Equal(t, tt.expected, buf.capacity)
			require.Equal(t, 0, buf.Len())
		})
	}
}

func TestRingBuffer_GetLast(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		adds     []string
		n        int
		expected []string
	}{
		{"basic", 5, []string{"a", "b"}, 2, []string{"a", "b"}},
		{"wraparound", 3, []string{"a", "b", "c", "d"}, 3, []string{"b", "c", "d"}},
		{"multiple wraparounds", 2, []string{"a", "b", "c", "d", "e"}, 2, []string{"d", "e"}},
		{"more than available", 10, []string{"a", "b"}, 5, []string{"a", "b"}},
		{"subset", 5, []string{"a", "b", "c", "d", "e"}, 2, []string{"d", "e"}},
		{"single capacity", 1, []string{"a", "b", "c"}, 1, []string{"c"}},
		{"empty", 5, nil, 3, nil},
		{"zero count", 5, []string{"a"}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewRingBuffer(tt.capacity)
			for _, a := range tt.adds {
				buf.Add(a)
			}
			require.Equal(t, tt.expected, buf.GetLast(tt.n))
		})
	}
}

func TestRingBuffer_Filter(t *testing.T) {
	buf := NewRingBuffer(4)
	for _, e := range []string{"keep-1", "drop-1", "keep-2", "keep-3", "drop-2"} {
		buf.Add(e)
	}

	keep := func(s string) bool { return strings.HasPrefix(s, "keep") }

	require.Equal(t, []string{"keep-2", "keep-3"}, buf.Filter(10, keep), "keep-1 was overwritten")
	require.Equal(t, []string{"keep-3"}, buf.Filter(1, keep), "newest entries win")
}

func TestRingBuffer_ClearThenAdd(t *testing.T) {
	buf := NewRingBuffer(3)
	buf.Add("a")
	buf.Add("b")
	buf.Clear()
	require.Nil(t, buf.GetLast(3))
	require.Equal(t, 0, buf.Len())

	buf.Add("x")
	buf.Add("y")
	require.Equal(t, []string{"x", "y"}, buf.GetLast(2))
}

func TestRingBuffer_Concurrent(t *testing.T) {
	buf := NewRingBuffer(100)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				buf.Add("entry")
			}
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = buf.GetLast(10)
			}
		}()
	}

	wg.Wait()
	require.Len(t, buf.GetLast(100), 100)
}
