package csvkv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/csvkv"
	"github.com/hupe1980/csvkv/compress"
	"github.com/hupe1980/csvkv/kvstore"
	"github.com/hupe1980/csvkv/record"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newMemoryClient(t *testing.T, optFns ...func(*csvkv.Options)) (*csvkv.Client, *kvstore.Memory) {
	t.Helper()
	mem := kvstore.NewMemory()
	optFns = append([]func(*csvkv.Options){csvkv.WithStore(mem)}, optFns...)
	client, err := csvkv.New(context.Background(), optFns...)
	require.NoError(t, err)
	return client, mem
}

func TestStoreAndGet(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t)

	path := writeCSV(t, "ID,NAME\n1,Alice\n2,Bob\n1,Carol\n")

	stats, err := client.StoreCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 2, stats.Keys)
	assert.Equal(t, 0, stats.Skipped)
	assert.True(t, stats.Saved)

	records, err := client.GetRecords(ctx, "1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	want1, _ := record.New([]string{"ID", "NAME"}, []string{"1", "Alice"})
	want2, _ := record.New([]string{"ID", "NAME"}, []string{"1", "Carol"})
	assert.True(t, want1.Equal(records[0]), "got %v", records[0])
	assert.True(t, want2.Equal(records[1]), "got %v", records[1])

	records, err = client.GetRecords(ctx, "3")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFieldOrderSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t)

	// Header deliberately not alphabetical; values include empty strings
	// and delimiter-like characters.
	path := writeCSV(t, "Z,A,M\n\"a,b\",,\"line\nbreak\"\n")

	_, err := client.StoreCSV(ctx, path)
	require.NoError(t, err)

	records, err := client.GetRecords(ctx, "a,b")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, []string{"Z", "A", "M"}, records[0].Names())
	assert.Equal(t, []string{"a,b", "", "line\nbreak"}, records[0].Values())
}

func TestReimportClearsNamespace(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t)

	_, err := client.StoreCSV(ctx, writeCSV(t, "ID,NAME\n1,Alice\n"))
	require.NoError(t, err)

	_, err = client.StoreCSV(ctx, writeCSV(t, "ID,NAME\n2,Bob\n"))
	require.NoError(t, err)

	records, err := client.GetRecords(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, records, "previous import should leave no residue")

	records, err = client.GetRecords(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// trackingStore fails the test if any store operation happens; used to prove
// namespace validation precedes store interaction.
type trackingStore struct {
	*kvstore.Memory
	ops int
}

func (s *trackingStore) Ping(ctx context.Context) error {
	s.ops++
	return s.Memory.Ping(ctx)
}

func (s *trackingStore) FlushDB(ctx context.Context) error {
	s.ops++
	return s.Memory.FlushDB(ctx)
}

func TestInvalidNamespaceRejectedBeforeStore(t *testing.T) {
	for _, ns := range []int{-1, -100, csvkv.MaxNamespace + 1} {
		store := &trackingStore{Memory: kvstore.NewMemory()}
		_, err := csvkv.New(context.Background(),
			csvkv.WithStore(store),
			csvkv.WithNamespace(ns),
		)
		require.Error(t, err)

		var invalidNS *csvkv.ErrInvalidNamespace
		require.ErrorAs(t, err, &invalidNS)
		assert.Equal(t, ns, invalidNS.Namespace)
		assert.Zero(t, store.ops, "namespace %d: store touched before validation", ns)
	}
}

func TestMissingSource(t *testing.T) {
	client, _ := newMemoryClient(t)
	_, err := client.StoreCSV(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, csvkv.ErrSourceUnavailable)
}

func TestEmptySource(t *testing.T) {
	client, _ := newMemoryClient(t)
	_, err := client.StoreCSV(context.Background(), writeCSV(t, ""))
	require.ErrorIs(t, err, csvkv.ErrMalformedSource)
}

func TestMissingKeyColumn(t *testing.T) {
	client, _ := newMemoryClient(t, csvkv.WithKeyColumn("EMAIL"))
	_, err := client.StoreCSV(context.Background(), writeCSV(t, "ID,NAME\n1,Alice\n"))
	require.ErrorIs(t, err, csvkv.ErrMalformedSource)
}

func TestArityMismatchSkippedByDefault(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t)

	path := writeCSV(t, "ID,NAME\n1,Alice\n2,Bob,extra\n3,Carol\n")

	stats, err := client.StoreCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 1, stats.Skipped)

	records, err := client.GetRecords(ctx, "3")
	require.NoError(t, err)
	assert.Len(t, records, 1, "rows after a skipped row must still import")

	records, err = client.GetRecords(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, records, "mismatched row must not be stored")
}

func TestArityMismatchStrict(t *testing.T) {
	client, _ := newMemoryClient(t, csvkv.WithStrictRows())

	path := writeCSV(t, "ID,NAME\n1,Alice\n2,Bob,extra\n")

	_, err := client.StoreCSV(context.Background(), path)
	require.Error(t, err)

	var arity *csvkv.ErrRowArityMismatch
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 3, arity.Line)
	assert.Equal(t, 2, arity.Expected)
	assert.Equal(t, 3, arity.Actual)
}

func TestCorruptBlob(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	client, err := csvkv.New(ctx, csvkv.WithStore(mem))
	require.NoError(t, err)

	_, err = client.StoreCSV(ctx, writeCSV(t, "ID,NAME\n1,Alice\n"))
	require.NoError(t, err)

	// Tamper with the stored list: append a blob that is not a valid frame.
	require.NoError(t, mem.RPush(ctx, "1", []byte("garbage")))

	_, err = client.GetRecords(ctx, "1")
	require.Error(t, err)

	var corrupt *csvkv.ErrCorruptRecord
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, "1", corrupt.Key)
	assert.Equal(t, 1, corrupt.Index)
}

func TestKeyColumnOverride(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t, csvkv.WithKeyColumn("NAME"))

	_, err := client.StoreCSV(ctx, writeCSV(t, "ID,NAME\n1,Alice\n2,Bob\n"))
	require.NoError(t, err)

	records, err := client.GetRecords(ctx, "Bob")
	require.NoError(t, err)
	require.Len(t, records, 1)
	id, _ := records[0].Get("ID")
	assert.Equal(t, "2", id)
}

func TestCompressorVariants(t *testing.T) {
	for _, name := range []string{"xz", "zstd", "lz4"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			comp, ok := compress.ByName(name)
			require.True(t, ok)

			client, _ := newMemoryClient(t, csvkv.WithCompressor(comp))

			_, err := client.StoreCSV(ctx, writeCSV(t, "ID,NAME\n1,Alice\n"))
			require.NoError(t, err)

			records, err := client.GetRecords(ctx, "1")
			require.NoError(t, err)
			require.Len(t, records, 1)
			name, _ := records[0].Get("NAME")
			assert.Equal(t, "Alice", name)
		})
	}
}

func TestSmallBatchesFlushEverything(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t, csvkv.WithBatchSize(2))

	path := writeCSV(t, "ID,N\n1,a\n1,b\n1,c\n1,d\n1,e\n")

	stats, err := client.StoreCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Rows)

	records, err := client.GetRecords(ctx, "1")
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, want := range []string{"a", "b", "c", "d", "e"} {
		v, _ := records[i].Get("N")
		assert.Equal(t, want, v, "record %d out of order", i)
	}
}

func TestManyRecordsPerKeyKeepOrder(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t)

	csvBody := "ID,SEQ\n"
	for i := 0; i < 100; i++ {
		csvBody += "k," + string(rune('0'+i%10)) + "\n"
	}
	_, err := client.StoreCSV(ctx, writeCSV(t, csvBody))
	require.NoError(t, err)

	records, err := client.GetRecords(ctx, "k")
	require.NoError(t, err)
	require.Len(t, records, 100)
	for i, r := range records {
		v, _ := r.Get("SEQ")
		assert.Equal(t, string(rune('0'+i%10)), v, "record %d out of order", i)
	}
}

func TestStoreUnavailableOnPing(t *testing.T) {
	store := &failingStore{Memory: kvstore.NewMemory()}
	_, err := csvkv.New(context.Background(), csvkv.WithStore(store))
	require.ErrorIs(t, err, csvkv.ErrStoreUnavailable)
}

type failingStore struct {
	*kvstore.Memory
}

func (s *failingStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestStreamRecords(t *testing.T) {
	ctx := context.Background()
	client, _ := newMemoryClient(t)

	_, err := client.StoreCSV(ctx, writeCSV(t, "ID,NAME\n1,Alice\n2,Bob\n1,Carol\n"))
	require.NoError(t, err)

	var names []string
	for rec, err := range client.StreamRecords(ctx, "1") {
		require.NoError(t, err)
		name, _ := rec.Get("NAME")
		names = append(names, name)
	}
	assert.Equal(t, []string{"Alice", "Carol"}, names)

	// Early break must not panic or leak.
	for range client.StreamRecords(ctx, "1") {
		break
	}

	// Re-iterating re-queries the store.
	count := 0
	for _, err := range client.StreamRecords(ctx, "1") {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 2, count)
}

func TestStreamRecordsCorrupt(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	client, err := csvkv.New(ctx, csvkv.WithStore(mem))
	require.NoError(t, err)

	require.NoError(t, mem.RPush(ctx, "k", []byte("garbage")))

	var got error
	for _, err := range client.StreamRecords(ctx, "k") {
		got = err
	}
	var corrupt *csvkv.ErrCorruptRecord
	require.ErrorAs(t, got, &corrupt)
}
