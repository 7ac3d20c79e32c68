// Package csvkv bulk-loads CSV files into a networked key-value store and
// looks records back up by key.
//
// Each data row becomes one record: an ordered list of field/value pairs in
// source-column order. Records are serialized, compressed (xz by default; the
// data is written once and read many times, so ratio beats speed) and
// appended under a key taken from a designated column, first column by
// default. Rows sharing a key accumulate in file order. Datasets live in
// integer-indexed namespaces (Redis logical databases), so several can
// coexist in one store.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	client, err := csvkv.New(ctx, csvkv.WithNamespace(3))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	stats, err := client.StoreCSV(ctx, "users.csv")   // clears namespace 3 first!
//	records, err := client.GetRecords(ctx, "42")
//
// In tests, inject the in-memory store instead of dialing Redis:
//
//	client, _ := csvkv.New(ctx, csvkv.WithStore(kvstore.NewMemory()))
//
// # Consistency
//
// Importing clears the namespace before writing and is not atomic against
// concurrent readers of that namespace: a reader overlapping an import may
// see an empty, partially loaded, or fully loaded dataset. Readers must
// tolerate that transient state; once the import returns, lookups are stable
// until the next import.
package csvkv
