// Package tagcache implements tag-based bulk invalidation for a key-value
// cache. Writers attach one or more tags to an entry; a later flush removes
// every entry carrying that tag combination without scanning the store's
// keyspace. The index is a set of "reference sets" in the backing store,
// partitioned by whether entries were written with a TTL.
//
// Components:
//   - Store: primitive key-value store with native set operations and a
//     single-round-trip batch add (e.g. Redis).
//   - Codec[V]: (de)serializes V <-> []byte.
//   - Resolver: derives the deterministic tag namespace for a tag set.
//
// Keys:
//
//	<keyPrefix><digest>:<key>          - cache entries (digest over the full namespace)
//	<tagPrefix><segment>:forever_ref   - index of entries written without a TTL
//	<tagPrefix><segment>:standard_ref  - index of entries written with a TTL
//
// Writes issue the index add and the primitive write concurrently; both must
// succeed. Flush drains both index partitions in bounded chunks with bounded
// parallelism, then removes the reference sets themselves. Re-running a
// failed flush is always safe: set adds and deletes are idempotent, so
// cleanup converges.
package tagcache
