package bloom

/*

# Bloom prefilter for 32 byte values

This package provides a single Bloom filter over 32 byte values, kept in one
byte region with a small fixed header. The accumulator uses it in front of the
exact root history set, so that asking about a root the log never produced can
usually be answered without touching the set.

## What Bloom filters are (and are not)

Bloom filters provide a *probabilistic prefilter*:

- If the filter says "definitely not present", then the element is not present.
- If the filter says "maybe present", then the element may or may not be present
  (false positives are possible).

Bloom filters are NOT cryptographic commitments and do not provide proofs of
exclusion. They never replace the exact membership check.

## Layout

	+----------------------+  32B header (magic, version, params)
	| HeaderV1             |
	+----------------------+  bitset bytes
	| bitset               |
	+----------------------+

## Indexing and bit numbering

Bit indices are derived by double hashing a domain separated SHA-256 of the
element. Bit 0 is the least significant bit of bitset byte 0.

## Capacity

A filter is sized for a fixed element count. Filter tracks the count of
inserted elements and reports Full once capacity is reached; the owner is
expected to rebuild a larger filter from its exact set.
*/
