package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	data    []string
	loadErr error
	saved   int
}

func (b *memBackend) Load(context.Context) ([]string, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return append([]string(nil), b.data...), nil
}

func (b *memBackend) Save(_ context.Context, encoded []string) error {
	b.data = append([]string(nil), encoded...)
	b.saved++
	return nil
}

func sample(body string) Task {
	return New(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), PriorityNormal, []string{body})
}

func TestStoreAddRejectsBlank(t *testing.T) {
	t.Parallel()

	s := NewStore(&memBackend{})
	assert.ErrorIs(t, s.Add(New(time.Now(), PriorityLow, []string{"", "  "})), ErrBlankTask)
	assert.Equal(t, 0, s.Len())
}

func TestStoreRemoveAtShiftsLaterTasks(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 4; n++ {
		s := NewStore(&memBackend{})
		for _, body := range []string{"a", "b", "c", "d"} {
			require.NoError(t, s.Add(sample(body)))
		}
		require.NoError(t, s.RemoveAt(n-1))
		require.Equal(t, 3, s.Len())

		var got []string
		for _, tk := range s.All() {
			got = append(got, tk.Body[0])
		}
		want := append([]string{}, []string{"a", "b", "c", "d"}[:n-1]...)
		want = append(want, []string{"a", "b", "c", "d"}[n:]...)
		assert.Equal(t, want, got, "delete %d", n)
	}
}

func TestStoreIndexBounds(t *testing.T) {
	t.Parallel()

	s := NewStore(&memBackend{})
	require.NoError(t, s.Add(sample("only")))

	_, err := s.Get(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, s.RemoveAt(-1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Set(3, sample("x")), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Set(0, Task{}), ErrBlankTask)

	require.NoError(t, s.Set(0, sample("replaced")))
	got, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"replaced"}, got.Body)
}

func TestStoreAllReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewStore(&memBackend{})
	require.NoError(t, s.Add(sample("a")))
	all := s.All()
	all[0] = sample("mutated")

	got, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Body[0])
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := &memBackend{data: []string{
		"2023-05-01T09:00 C\nShip release\n",
		"2023-05-02T18:30:15 L\nRead\nchapter 4\n",
	}}
	original := append([]string(nil), backend.data...)

	s := NewStore(backend)
	require.NoError(t, s.Load(ctx))
	require.Equal(t, 2, s.Len())
	require.NoError(t, s.Save(ctx))

	assert.Equal(t, original, backend.data)
	assert.Equal(t, 1, backend.saved)
}

func TestStoreLoadErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("boom")
	assert.ErrorIs(t, NewStore(&memBackend{loadErr: boom}).Load(ctx), boom)
	assert.ErrorIs(t, NewStore(&memBackend{data: []string{"nonsense"}}).Load(ctx), ErrMalformed)
}

func TestStoreLoadRejectsNonCanonicalRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, raw := range []string{
		"2024-01-01T09:00 h\nfoo\n",
		"2024-01-01T09:00 H\n  indented\n",
		"2024-01-01T09:00 H\nno newline",
	} {
		s := NewStore(&memBackend{data: []string{"2024-01-01T09:00 H\nok\n", raw}})
		assert.ErrorIs(t, s.Load(ctx), ErrMalformed, raw)
		assert.Equal(t, 0, s.Len(), raw)
	}
}
